package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"food-delivery-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	Dispatch               *metrics.Dispatch
	Gatherer               prometheus.Gatherer
}

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(reg *prometheus.Registry) (metricsOut, error) {
	rl, err := registerCounter(reg, metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerCounter(reg, metrics.NewGatewayRetriesTotal(), "gateway_retries_total")
	if err != nil {
		return metricsOut{}, err
	}
	d, err := metrics.NewDispatch(reg)
	if err != nil {
		return metricsOut{}, fmt.Errorf("register dispatch metrics: %w", err)
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		GatewayRetriesTotal:    gr,
		Dispatch:               d,
		// process, Go runtime and HTTP metrics live on the default registry
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}, nil
}

// registerCounter returns the already registered collector when there is one.
func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newRegistry, provideMetrics)
}
