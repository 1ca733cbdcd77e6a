package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/gateway/notify"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/metrics"
	"food-delivery-dispatch/internal/realtime"
	"food-delivery-dispatch/internal/repository"
	"food-delivery-dispatch/internal/service/claim"
	"food-delivery-dispatch/internal/service/dispatch"
	"food-delivery-dispatch/internal/service/fees"
	"food-delivery-dispatch/internal/service/payments"
)

type outboundIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newOutbound returns the retrying relay client, or a logging no-op when no
// relay URL is configured.
func newOutbound(in outboundIn) dispatch.Outbound {
	relay := notify.NewRelayGateway(in.Cfg.Notify.URL, in.Cfg.Notify.Timeout)
	if relay == nil {
		in.Logger.Info("notify relay not configured, outbound messages are logged only")
		return notify.Nop{Logger: in.Logger}
	}
	return notify.NewRetryingGateway(relay, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts: in.Cfg.Notify.MaxAttempts,
		BaseDelay:   in.Cfg.Notify.BaseDelay,
		MaxDelay:    in.Cfg.Notify.MaxDelay,
	})
}

func newHub(logger logx.Logger, m *metrics.Dispatch) *realtime.Hub {
	return realtime.NewHub(logger, m)
}

func newDispatcher(
	cfg *config.Config,
	logger logx.Logger,
	chat *repository.ChatRepo,
	notifications *repository.NotificationRepo,
	hub *realtime.Hub,
	outbound dispatch.Outbound,
	m *metrics.Dispatch,
) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(chat, notifications, hub, outbound, m, cfg.OperationTimeout, logger)
}

// newProtocol builds the websocket frame router with the chat frames bound.
func newProtocol(logger logx.Logger, d *dispatch.Dispatcher) *realtime.Protocol {
	p := realtime.NewProtocol(logger)
	d.Bind(p)
	return p
}

func newCoordinator(
	cfg *config.Config,
	logger logx.Logger,
	store *repository.DeliveryRepo,
	d *dispatch.Dispatcher,
	m *metrics.Dispatch,
) *claim.Coordinator {
	quoter := fees.NewQuoter(fees.Config{
		BaseCents:          cfg.Fees.BaseCents,
		PerKmCents:         cfg.Fees.PerKmCents,
		DriverSharePercent: cfg.Fees.DriverSharePercent,
	})
	return claim.NewCoordinator(store, quoter, d, m, cfg.OperationTimeout, logger)
}

func newPaymentsProcessor(logger logx.Logger, c *claim.Coordinator, d *dispatch.Dispatcher) *payments.Processor {
	return payments.NewProcessor(c, d, logger)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewChatRepo,
		repository.NewNotificationRepo,
		newOutbound,
		newHub,
		newDispatcher,
		newProtocol,
		newCoordinator,
		newPaymentsProcessor,
	)
}
