package domain

// EventType names an outbound real-time event.
type EventType string

// Outbound event names pushed to live connections.
const (
	EventNewOrderAvailable     EventType = "new_order_available"
	EventOrderClaimed          EventType = "order_claimed"
	EventDeliveryStatusChanged EventType = "delivery_status_changed"
	EventNewMessage            EventType = "new_message"
	EventNewChatNotification   EventType = "new_chat_notification"
	EventMessagesRead          EventType = "messages_read"
	EventNotification          EventType = "notification"
	EventPong                  EventType = "pong"
	EventError                 EventType = "error"
)

// DeliveryEvent is emitted by the claim coordinator after each committed transition.
type DeliveryEvent struct {
	DeliveryID int64
	OrderID    string
	Status     DeliveryStatus
	DriverID   *int64
	CustomerID int64
	OwnerID    int64
	Claim      DeliveryClaim
}

// NewDeliveryEvent builds the event for a committed claim state.
func NewDeliveryEvent(c DeliveryClaim) DeliveryEvent {
	return DeliveryEvent{
		DeliveryID: c.ID,
		OrderID:    c.OrderID,
		Status:     c.Status,
		DriverID:   c.DriverID,
		CustomerID: c.CustomerID,
		OwnerID:    c.OwnerID,
		Claim:      c,
	}
}
