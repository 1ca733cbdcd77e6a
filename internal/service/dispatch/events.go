package dispatch

import (
	"time"

	"food-delivery-dispatch/internal/domain"
)

// ChatNotificationPayload is pushed to a participant who is not viewing the
// conversation when a message arrives.
type ChatNotificationPayload struct {
	ConversationID int64       `json:"conversation_id"`
	MessageID      int64       `json:"message_id"`
	SenderRole     domain.Role `json:"sender_role"`
	SenderID       int64       `json:"sender_id"`
	Preview        string      `json:"preview"`
	NotificationID int64       `json:"notification_id,omitempty"`
}

// MessagesReadPayload tells a room that one side read its messages.
type MessagesReadPayload struct {
	ConversationID int64       `json:"conversation_id"`
	ReaderRole     domain.Role `json:"reader_role"`
	ReaderID       int64       `json:"reader_id"`
	Count          int64       `json:"count"`
}

// OrderAvailablePayload is broadcast to drivers when a delivery opens.
type OrderAvailablePayload struct {
	DeliveryID   int64          `json:"delivery_id"`
	OrderID      string         `json:"order_id"`
	RestaurantID int64          `json:"restaurant_id"`
	Pickup       domain.Address `json:"pickup"`
	Dropoff      domain.Address `json:"dropoff"`
	DistanceKm   float64        `json:"distance_km"`
	DriverPayout int64          `json:"driver_payout"`
	CreatedAt    time.Time      `json:"created_at"`
}

// OrderClaimedPayload is broadcast to drivers so their lists drop the order.
type OrderClaimedPayload struct {
	DeliveryID int64  `json:"delivery_id"`
	OrderID    string `json:"order_id"`
	DriverID   int64  `json:"driver_id"`
}

// DeliveryStatusPayload is pushed to the customer and the restaurant owner of
// a delivery after every committed transition.
type DeliveryStatusPayload struct {
	DeliveryID     int64                 `json:"delivery_id"`
	OrderID        string                `json:"order_id"`
	Status         domain.DeliveryStatus `json:"status"`
	DriverID       *int64                `json:"driver_id,omitempty"`
	NotificationID int64                 `json:"notification_id,omitempty"`
}
