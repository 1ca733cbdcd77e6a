package payments

import (
	"time"

	"food-delivery-dispatch/internal/domain"
)

// Event is a single payment event
type Event struct {
	Type              string
	OrderID           string
	CustomerID        int64
	OwnerID           int64
	RestaurantID      int64
	RestaurantAddress domain.Address
	CustomerAddress   domain.Address
	RequiresDelivery  bool
	CreatedAt         time.Time
}

// Confirmed returns the confirmation carried by the event.
func (e Event) Confirmed() domain.PaymentConfirmed {
	return domain.PaymentConfirmed{
		OrderID:           e.OrderID,
		CustomerID:        e.CustomerID,
		OwnerID:           e.OwnerID,
		RestaurantID:      e.RestaurantID,
		RestaurantAddress: e.RestaurantAddress,
		CustomerAddress:   e.CustomerAddress,
		RequiresDelivery:  e.RequiresDelivery,
	}
}
