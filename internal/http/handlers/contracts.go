package handlers

import (
	"context"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/service/payments"
)

type deliveryUsecase interface {
	ListAvailable(ctx context.Context) ([]domain.DeliveryClaim, error)
	Claim(ctx context.Context, orderID string, driverID int64) (domain.DeliveryClaim, error)
	Advance(ctx context.Context, deliveryID, driverID int64, status domain.DeliveryStatus, notes *string) (domain.AdvanceResult, error)
	DriverStats(ctx context.Context, driverID int64) (domain.DriverStats, error)
}

type chatUsecase interface {
	StartConversation(ctx context.Context, caller domain.Identity, otherID, restaurantID int64) (domain.Conversation, error)
	ListConversations(ctx context.Context, who domain.Identity, limit int) ([]domain.Conversation, error)
	ListMessages(ctx context.Context, who domain.Identity, conversationID int64, limit int, before int64) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, sender domain.Identity, conversationID int64, body string) (domain.ChatMessage, error)
	MarkConversationRead(ctx context.Context, who domain.Identity, conversationID int64) (int64, error)
}

type notificationUsecase interface {
	ListNotifications(ctx context.Context, who domain.Identity, limit int, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, who domain.Identity, id int64) error
}

type paymentUsecase interface {
	Confirm(ctx context.Context, c domain.PaymentConfirmed) (payments.Outcome, error)
}
