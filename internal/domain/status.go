package domain

// DeliveryStatus is the lifecycle state of a delivery claim.
type DeliveryStatus string

// List of possible delivery statuses
const (
	DeliveryAvailable DeliveryStatus = "available"
	DeliveryClaimed   DeliveryStatus = "claimed"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// deliveryOrder is the forward path; cancelled sits outside it.
var deliveryOrder = map[DeliveryStatus]int{
	DeliveryAvailable: 0,
	DeliveryClaimed:   1,
	DeliveryPickedUp:  2,
	DeliveryInTransit: 3,
	DeliveryDelivered: 4,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	if s == DeliveryCancelled {
		return true
	}
	_, ok := deliveryOrder[s]
	return ok
}

// Terminal reports whether no further transition is possible.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// CanAdvanceTo reports whether a driver may move a claimed delivery from s to next.
// Forward moves may skip steps; any non-terminal claimed state may be cancelled.
// Moving to available is never allowed: that transition belongs to claim release,
// which this system does not offer.
func (s DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	if s == DeliveryAvailable || s.Terminal() || !next.Valid() {
		return false
	}
	if next == DeliveryCancelled {
		return true
	}
	return deliveryOrder[next] > deliveryOrder[s]
}
