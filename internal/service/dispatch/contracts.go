//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/realtime"
)

// ChatStore persists conversations and messages.
type ChatStore interface {
	StartConversation(ctx context.Context, customerID, ownerID, restaurantID int64) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, who domain.Identity, limit int) ([]domain.Conversation, error)
	InsertMessage(ctx context.Context, m *domain.ChatMessage) error
	UpdatePreview(ctx context.Context, p domain.ConversationPreview) error
	MarkRead(ctx context.Context, conversationID int64, reader domain.Identity) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, limit int, before int64) ([]domain.ChatMessage, error)
}

// NotificationStore persists durable notifications.
type NotificationStore interface {
	Insert(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, recipient domain.Identity, limit int, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, recipient domain.Identity, id int64) (bool, error)
}

// Hub delivers envelopes to live connections.
type Hub interface {
	Push(id domain.Identity, env realtime.Envelope) error
	Broadcast(role domain.Role, env realtime.Envelope) realtime.BroadcastResult
	PushRoom(conversationID int64, env realtime.Envelope) realtime.BroadcastResult
	InRoom(conversationID int64, id domain.Identity) bool
	Join(conversationID int64, conn realtime.Conn)
	Leave(conversationID int64, conn realtime.Conn)
}

// Outbound sends email and SMS through the external relay.
type Outbound interface {
	Send(ctx context.Context, msg domain.OutboundMessage) error
}

// Recorder receives notification statistics; *metrics.Dispatch satisfies it.
type Recorder interface {
	Notification(kind string)
}

type nopRecorder struct{}

func (nopRecorder) Notification(string) {}
