package payments

import (
	"context"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// Outcome is the result of processing one confirmation.
type Outcome struct {
	Claim   *domain.DeliveryClaim
	Created bool
}

// Processor turns confirmed payments into deliveries and notifications.
type Processor struct {
	deliveries DeliveryCreator
	notifier   Notifier
	factory    *actionFactory
	logger     logx.Logger
}

// NewProcessor creates a Processor
func NewProcessor(deliveries DeliveryCreator, notifier Notifier, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		deliveries: deliveries,
		notifier:   notifier,
		logger:     logger,
	}
	p.factory = newActionFactory(p.onConfirmed)
	return p
}

// Handle processes a single payments.Event. Event types it does not know are
// skipped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("payment event ignored",
			logx.String("type", e.Type),
			logx.String("order_id", e.OrderID),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onConfirmed(ctx context.Context, e Event) error {
	_, err := p.Confirm(ctx, e.Confirmed())
	return err
}

// Confirm opens the delivery of a paid order, when it needs one, and notifies
// the parties the first time the order is seen. Redelivered confirmations are
// no-ops. Notification failures are logged: the claim row is what must not be
// lost.
func (p *Processor) Confirm(ctx context.Context, c domain.PaymentConfirmed) (Outcome, error) {
	claim, created, err := p.deliveries.CreateFromPayment(ctx, c)
	if err != nil {
		return Outcome{}, err
	}

	var out Outcome
	if c.RequiresDelivery {
		out = Outcome{Claim: &claim, Created: created}
		if !created {
			return out, nil
		}
	}

	if err := p.notifier.PaymentConfirmed(context.WithoutCancel(ctx), c); err != nil {
		p.logger.Error("payment notifications failed",
			logx.String("order_id", c.OrderID),
			logx.Err(err),
		)
	}
	return out, nil
}
