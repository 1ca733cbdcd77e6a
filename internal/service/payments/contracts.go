//go:generate mockgen -source=contracts.go -destination=payments_mocks_test.go -package=payments_test

package payments

import (
	"context"

	"food-delivery-dispatch/internal/domain"
)

// DeliveryCreator opens deliveries for paid orders.
type DeliveryCreator interface {
	CreateFromPayment(ctx context.Context, p domain.PaymentConfirmed) (domain.DeliveryClaim, bool, error)
}

// Notifier tells the owner and the customer about a confirmed payment.
type Notifier interface {
	PaymentConfirmed(ctx context.Context, p domain.PaymentConfirmed) error
}
