package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/http/handlers"
	mw "food-delivery-dispatch/internal/http/middleware"
	"food-delivery-dispatch/internal/logx"
)

const defaultTimeout = 5 * time.Second

// Deps groups everything the router mounts.
type Deps struct {
	Logger        logx.Logger
	Base          *handlers.Handlers
	Deliveries    *handlers.DeliveryHandler
	Chat          *handlers.ChatHandler
	Notifications *handlers.NotificationHandler
	Payments      *handlers.PaymentHandler
	// WS serves the realtime upgrade. It stays outside the request timeout.
	WS http.Handler
	// RateLimit wraps the API routes; nil disables it.
	RateLimit func(http.Handler) http.Handler
	Timeout   time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = logx.Nop()
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.WS != nil {
		r.Handle("/ws", d.WS)
	}

	r.Group(func(api chi.Router) {
		api.Use(mw.Identify)
		if d.RateLimit != nil {
			api.Use(d.RateLimit)
		}
		api.Use(middleware.Timeout(timeout))

		api.Route("/deliveries", func(dr chi.Router) {
			dr.Use(mw.RequireRole(domain.RoleDriver))
			dr.Get("/available", d.Deliveries.ListAvailable)
			dr.Post("/claim", d.Deliveries.Claim)
			dr.Post("/{id}/status", d.Deliveries.UpdateStatus)
		})
		api.With(mw.RequireRole(domain.RoleDriver)).Get("/drivers/me/stats", d.Deliveries.MyStats)

		api.Route("/conversations", func(cr chi.Router) {
			cr.Use(mw.RequireRole(domain.RoleCustomer, domain.RoleOwner))
			cr.Get("/", d.Chat.List)
			cr.Post("/", d.Chat.Start)
			cr.Get("/{id}/messages", d.Chat.Messages)
			cr.Post("/{id}/messages", d.Chat.Send)
			cr.Post("/{id}/read", d.Chat.Read)
		})

		api.Route("/notifications", func(nr chi.Router) {
			nr.Use(mw.RequireRole())
			nr.Get("/", d.Notifications.List)
			nr.Post("/{id}/read", d.Notifications.Read)
		})

		api.Post("/internal/payments/confirmed", d.Payments.Confirmed)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
