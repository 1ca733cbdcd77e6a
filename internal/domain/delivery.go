package domain

import "time"

// Address is a geocoded location.
type Address struct {
	Line string  `json:"line"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// FeeQuote is the priced breakdown of one delivery, in cents.
type FeeQuote struct {
	DistanceKm   float64
	DeliveryFee  int64
	DriverPayout int64
	Commission   int64
}

// DeliveryClaim is the authoritative state of one deliverable order.
type DeliveryClaim struct {
	ID           int64
	OrderID      string
	CustomerID   int64
	OwnerID      int64
	RestaurantID int64
	Pickup       Address
	Dropoff      Address
	Fee          FeeQuote
	Status       DeliveryStatus
	DriverID     *int64
	Notes        string
	CreatedAt    time.Time
	ClaimedAt    *time.Time
	PickedUpAt   *time.Time
	InTransitAt  *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
}

// AssignedTo reports whether the claim is held by the driver.
func (c *DeliveryClaim) AssignedTo(driverID int64) bool {
	return c.DriverID != nil && *c.DriverID == driverID
}

// EarningsEntry is the payout record written once per delivered claim.
type EarningsEntry struct {
	IdempotencyKey string
	DeliveryID     int64
	DriverID       int64
	DeliveryFee    int64
	DriverPayout   int64
	Commission     int64
	CreatedAt      time.Time
}

// PaymentConfirmed is emitted by the payment collaborator once a paid order
// that needs delivery is verified.
type PaymentConfirmed struct {
	OrderID           string
	CustomerID        int64
	OwnerID           int64
	RestaurantID      int64
	RestaurantAddress Address
	CustomerAddress   Address
	RequiresDelivery  bool
}

// AdvanceResult describes the outcome of a status change.
type AdvanceResult struct {
	Claim DeliveryClaim
	// Replayed is set when the claim was already in the requested status.
	Replayed bool
}

// DriverStats is the lifetime summary of a driver's completed deliveries.
type DriverStats struct {
	DriverID      int64
	Deliveries    int64
	EarningsCents int64
}
