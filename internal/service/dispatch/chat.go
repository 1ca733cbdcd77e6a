package dispatch

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

// MaxMessageRunes bounds the length of a chat message body.
const MaxMessageRunes = 2000

const (
	defaultPageSize = 50
	maxPageSize     = 100
	previewRunes    = 80
)

// SendMessage stores a chat message and delivers it. Everybody viewing the
// conversation gets the full message; a counterpart who is not viewing it gets
// a durable notification and a lightweight alert instead.
func (d *Dispatcher) SendMessage(ctx context.Context, sender domain.Identity, conversationID int64, body string) (domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.ChatMessage{}, fmt.Errorf("message body is empty: %w", apperr.ErrInvalid)
	}
	if utf8.RuneCountInString(body) > MaxMessageRunes {
		return domain.ChatMessage{}, fmt.Errorf("message longer than %d characters: %w", MaxMessageRunes, apperr.ErrInvalid)
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	conv, err := d.conversationFor(ctx, sender, conversationID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	counterpart, _ := conv.Counterpart(sender)

	unlock := d.convLocks.lock(conversationID)
	defer unlock()

	msg := domain.ChatMessage{
		ConversationID: conversationID,
		SenderRole:     sender.Role,
		SenderID:       sender.ID,
		Body:           body,
	}
	if err := d.chat.InsertMessage(ctx, &msg); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("store message: %w", err)
	}

	// The message is stored; alert and preview must not depend on the caller.
	after, cancelAfter := d.withTimeout(context.WithoutCancel(ctx))
	defer cancelAfter()

	res := d.hub.PushRoom(conversationID, realtime.Envelope{Type: domain.EventNewMessage, Payload: msg})

	if !d.hub.InRoom(conversationID, counterpart) {
		d.alertCounterpart(after, counterpart, msg)
	}

	err = d.chat.UpdatePreview(after, domain.ConversationPreview{
		ConversationID: conversationID,
		Body:           body,
		SenderRole:     sender.Role,
		At:             msg.CreatedAt,
		UnreadFor:      counterpart.Role,
	})
	if err != nil {
		d.logger.Error("update conversation preview failed",
			logx.Int64("conversation_id", conversationID),
			logx.Int64("message_id", msg.ID),
			logx.Err(err),
		)
	}

	d.logger.Debug("message sent",
		logx.Int64("conversation_id", conversationID),
		logx.Int64("message_id", msg.ID),
		logx.Int("room_delivered", res.Delivered),
		logx.Int("room_failed", res.Failed),
	)
	return msg, nil
}

func (d *Dispatcher) alertCounterpart(ctx context.Context, to domain.Identity, msg domain.ChatMessage) {
	payload := ChatNotificationPayload{
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
		SenderRole:     msg.SenderRole,
		SenderID:       msg.SenderID,
		Preview:        preview(msg.Body),
	}
	n := &domain.Notification{
		Recipient: to,
		Type:      domain.NotifNewMessage,
		Title:     "New message",
		Body:      payload.Preview,
		Payload:   mustJSON(payload),
	}
	err := d.notify(ctx, n, func(n *domain.Notification) realtime.Envelope {
		payload.NotificationID = n.ID
		return realtime.Envelope{Type: domain.EventNewChatNotification, Payload: payload}
	})
	if err != nil {
		// the message itself is stored; the alert still goes out
		d.push(to, realtime.Envelope{Type: domain.EventNewChatNotification, Payload: payload})
	}
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewRunes {
		return body
	}
	r := []rune(body)
	return string(r[:previewRunes]) + "…"
}

// StartConversation returns the conversation between the caller and the other
// side for a restaurant, creating it on first use.
func (d *Dispatcher) StartConversation(ctx context.Context, caller domain.Identity, otherID, restaurantID int64) (domain.Conversation, error) {
	if otherID <= 0 || restaurantID <= 0 {
		return domain.Conversation{}, fmt.Errorf("participant and restaurant ids must be positive: %w", apperr.ErrInvalid)
	}
	var customerID, ownerID int64
	switch caller.Role {
	case domain.RoleCustomer:
		customerID, ownerID = caller.ID, otherID
	case domain.RoleOwner:
		customerID, ownerID = otherID, caller.ID
	default:
		return domain.Conversation{}, fmt.Errorf("%s cannot start conversations: %w", caller.Role, apperr.ErrForbidden)
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	conv, err := d.chat.StartConversation(ctx, customerID, ownerID, restaurantID)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("start conversation: %w", err)
	}
	return *conv, nil
}

// ListConversations returns the caller's conversations, most recent first.
func (d *Dispatcher) ListConversations(ctx context.Context, who domain.Identity, limit int) ([]domain.Conversation, error) {
	if who.Role != domain.RoleCustomer && who.Role != domain.RoleOwner {
		return nil, fmt.Errorf("%s has no conversations: %w", who.Role, apperr.ErrForbidden)
	}
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	list, err := d.chat.ListConversations(ctx, who, pageSize(limit))
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return list, nil
}

// JoinConversation puts conn in the conversation room after checking that its
// identity takes part in the conversation.
func (d *Dispatcher) JoinConversation(ctx context.Context, conn realtime.Conn, conversationID int64) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if _, err := d.conversationFor(ctx, conn.Identity(), conversationID); err != nil {
		return err
	}
	d.hub.Join(conversationID, conn)
	return nil
}

// LeaveConversation removes conn from the conversation room.
func (d *Dispatcher) LeaveConversation(conn realtime.Conn, conversationID int64) {
	d.hub.Leave(conversationID, conn)
}

// MarkConversationRead marks the messages the caller received as read and
// tells the room. It returns the number of messages marked.
func (d *Dispatcher) MarkConversationRead(ctx context.Context, who domain.Identity, conversationID int64) (int64, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if _, err := d.conversationFor(ctx, who, conversationID); err != nil {
		return 0, err
	}
	count, err := d.chat.MarkRead(ctx, conversationID, who)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	d.hub.PushRoom(conversationID, realtime.Envelope{
		Type: domain.EventMessagesRead,
		Payload: MessagesReadPayload{
			ConversationID: conversationID,
			ReaderRole:     who.Role,
			ReaderID:       who.ID,
			Count:          count,
		},
	})
	return count, nil
}

// ListMessages returns a page of history older than before (0 for the latest).
func (d *Dispatcher) ListMessages(ctx context.Context, who domain.Identity, conversationID int64, limit int, before int64) ([]domain.ChatMessage, error) {
	if before < 0 {
		return nil, fmt.Errorf("before must not be negative: %w", apperr.ErrInvalid)
	}
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if _, err := d.conversationFor(ctx, who, conversationID); err != nil {
		return nil, err
	}
	msgs, err := d.chat.ListMessages(ctx, conversationID, pageSize(limit), before)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}
