package deliverytx

import (
	"context"
	"time"

	"food-delivery-dispatch/internal/domain"
)

// Repository is the set of delivery operations available inside one transaction.
// Getters return (nil, nil) when the row does not exist.
type Repository interface {
	// CompareAndSetClaim moves an available claim to claimed for driverID.
	// It returns nil when the claim was not available.
	CompareAndSetClaim(ctx context.Context, orderID string, driverID int64, at time.Time) (*domain.DeliveryClaim, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.DeliveryClaim, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.DeliveryClaim, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DeliveryStatus, notes *string, at time.Time) (*domain.DeliveryClaim, error)
	// InsertEarnings reports false when an entry with the same key already exists.
	InsertEarnings(ctx context.Context, e domain.EarningsEntry) (bool, error)
	IncrementDriverStats(ctx context.Context, driverID, payout int64) error
	// InsertAvailable reports false when a claim for the order already exists.
	InsertAvailable(ctx context.Context, c *domain.DeliveryClaim) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
