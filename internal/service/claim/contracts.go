//go:generate mockgen -source=contracts.go -destination=claim_mocks_test.go -package=claim_test

package claim

import (
	"context"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/ports/deliverytx"
)

// Store is the persistent delivery storage used by the coordinator.
type Store interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	ListAvailable(ctx context.Context, limit int) ([]domain.DeliveryClaim, error)
	DriverStats(ctx context.Context, driverID int64) (deliveries, earnings int64, err error)
}

// EventSink receives every committed delivery transition. The coordinator
// never talks to live connections itself.
type EventSink interface {
	Publish(ctx context.Context, e domain.DeliveryEvent) error
}

// FeeQuoter prices a new delivery.
type FeeQuoter interface {
	Quote(pickup, dropoff domain.Address) domain.FeeQuote
}

// Recorder receives claim statistics; *metrics.Dispatch satisfies it.
type Recorder interface {
	Claim(result string)
	Transition(status string)
}

type nopRecorder struct{}

func (nopRecorder) Claim(string)      {}
func (nopRecorder) Transition(string) {}
