package domain

import (
	"encoding/json"
	"time"
)

// NotificationType tags a durable notification.
type NotificationType string

// List of notification types
const (
	NotifOrderPaid        NotificationType = "order_paid"
	NotifNewOrder         NotificationType = "new_order"
	NotifOrderClaimed     NotificationType = "order_claimed"
	NotifDeliveryStatus   NotificationType = "delivery_status"
	NotifDeliveryComplete NotificationType = "delivery_complete"
	NotifNewMessage       NotificationType = "new_message"
)

// Notification is a durable, append-only message for one recipient.
type Notification struct {
	ID        int64            `json:"id"`
	Recipient Identity         `json:"recipient"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
