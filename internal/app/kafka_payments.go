package app

import (
	"context"
	"errors"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/service/payments"
	"food-delivery-dispatch/internal/transport/kafka"
)

type paymentHandler interface {
	Handle(ctx context.Context, e payments.Event) error
}

// makePaymentsKafka adapts the payments processor to the consumer. Events the
// processor rejects as invalid are never retried.
func makePaymentsKafka(p paymentHandler) kafka.HandleFunc {
	return func(ctx context.Context, event payments.Event) error {
		err := p.Handle(ctx, event)
		if err != nil && errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}

// newKafkaConsumer returns nil when Kafka is not configured.
func newKafkaConsumer(cfg *config.Config, logger logx.Logger, p *payments.Processor) (*kafka.Consumer, error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka not configured, payment events are accepted over http only")
		return nil, nil
	}
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.PaymentsTopic, makePaymentsKafka(p))
}
