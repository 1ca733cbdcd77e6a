package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/http/debugserver"
	"food-delivery-dispatch/internal/http/handlers"
	mw "food-delivery-dispatch/internal/http/middleware"
	"food-delivery-dispatch/internal/http/middleware/ratelimit"
	"food-delivery-dispatch/internal/http/router"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
	"food-delivery-dispatch/internal/service/claim"
	"food-delivery-dispatch/internal/service/dispatch"
	"food-delivery-dispatch/internal/service/payments"
	"food-delivery-dispatch/internal/transport/ws"
)

const serviceName = "food-delivery-dispatch"

func newWSHandler(cfg *config.Config, logger logx.Logger, hub *realtime.Hub, p *realtime.Protocol) *ws.Handler {
	return ws.NewHandler(hub, p, mw.ParseIdentity, ws.Options{
		SendBuffer:      cfg.Realtime.SendBuffer,
		PingInterval:    cfg.Realtime.PingInterval,
		WriteTimeout:    cfg.Realtime.WriteTimeout,
		MaxMessageBytes: cfg.Realtime.MaxMessageBytes,
	}, logger)
}

// healthService pairs the gRPC health server with its listen address.
type healthService struct {
	Addr   string
	Server *grpc.Server
	Health *health.Server
}

// newHealthService returns nil when no health address is configured.
func newHealthService(cfg *config.Config) *healthService {
	if cfg.Debug.HealthAddr == "" {
		return nil
	}
	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &healthService{Addr: cfg.Debug.HealthAddr, Server: srv, Health: hs}
}

func registerTransport(container *dig.Container) error {
	return provideAll(container,
		newKafkaConsumer,
		newWSHandler,
		newHealthService,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func newDeliveryHandler(logger logx.Logger, c *claim.Coordinator) *handlers.DeliveryHandler {
	return handlers.NewDeliveryHandler(logger, c)
}

func newChatHandler(logger logx.Logger, d *dispatch.Dispatcher) *handlers.ChatHandler {
	return handlers.NewChatHandler(logger, d)
}

func newNotificationHandler(logger logx.Logger, d *dispatch.Dispatcher) *handlers.NotificationHandler {
	return handlers.NewNotificationHandler(logger, d)
}

func newPaymentHandler(logger logx.Logger, p *payments.Processor) *handlers.PaymentHandler {
	return handlers.NewPaymentHandler(logger, p)
}

type routerIn struct {
	dig.In

	Cfg           *config.Config
	Logger        logx.Logger
	Base          *handlers.Handlers
	Deliveries    *handlers.DeliveryHandler
	Chat          *handlers.ChatHandler
	Notifications *handlers.NotificationHandler
	Payments      *handlers.PaymentHandler
	WS            *ws.Handler
	RateLimit     *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:        in.Logger,
		Base:          in.Base,
		Deliveries:    in.Deliveries,
		Chat:          in.Chat,
		Notifications: in.Notifications,
		Payments:      in.Payments,
		WS:            in.WS,
		RateLimit:     in.RateLimit.Handler(),
		Timeout:       in.Cfg.OperationTimeout + time.Second,
	})
}

type serversOut struct {
	dig.Out

	Main  *http.Server
	Debug *http.Server `name:"debug_server"`
}

type serversIn struct {
	dig.In

	Cfg      *config.Config
	Mux      http.Handler
	Gatherer prometheus.Gatherer
}

// newServers builds the API server and, when an address is configured, the
// pprof and metrics server. The API server has no write timeout so websocket
// sessions are not cut.
func newServers(in serversIn) serversOut {
	out := serversOut{
		Main: &http.Server{
			Addr:              fmt.Sprintf(":%d", in.Cfg.Port),
			Handler:           in.Mux,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	if in.Cfg.Debug.Addr != "" {
		out.Debug = &http.Server{
			Addr: in.Cfg.Debug.Addr,
			Handler: debugserver.Handler(debugserver.Config{
				User: in.Cfg.Debug.User,
				Pass: in.Cfg.Debug.Pass,
			}, in.Gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return out
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		handlers.New,
		newDeliveryHandler,
		newChatHandler,
		newNotificationHandler,
		newPaymentHandler,
		newRouter,
		newServers,
	)
}
