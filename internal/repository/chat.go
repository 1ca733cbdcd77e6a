package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery-dispatch/internal/domain"
)

const conversationColumns = `
	id, customer_id, owner_id, restaurant_id,
	last_message, last_sender_role, last_message_at,
	customer_unread, owner_unread, created_at, updated_at`

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(
		&c.ID, &c.CustomerID, &c.OwnerID, &c.RestaurantID,
		&c.LastMessage, &c.LastSenderRole, &c.LastMessageAt,
		&c.CustomerUnread, &c.OwnerUnread, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ChatRepo stores conversations and their messages.
type ChatRepo struct {
	db *pgxpool.Pool
}

// NewChatRepo creates a new ChatRepo.
func NewChatRepo(db *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{db: db}
}

// StartConversation returns the conversation of the participant pair for a
// restaurant, creating it on first use.
func (r *ChatRepo) StartConversation(ctx context.Context, customerID, ownerID, restaurantID int64) (*domain.Conversation, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	c, err := scanConversation(r.db.QueryRow(ctx, `
        INSERT INTO conversations (customer_id, owner_id, restaurant_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (customer_id, owner_id, restaurant_id)
        DO UPDATE SET customer_id = EXCLUDED.customer_id
        RETURNING `+conversationColumns, customerID, ownerID, restaurantID))
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", classify(err))
	}
	return c, nil
}

// GetConversation returns a conversation, or nil when it does not exist.
func (r *ChatRepo) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	c, err := scanConversation(r.db.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation %d: %w", id, classify(err))
	}
	return c, nil
}

// ListConversations returns the conversations of a participant, most recent first.
func (r *ChatRepo) ListConversations(ctx context.Context, who domain.Identity, limit int) ([]domain.Conversation, error) {
	column, err := participantColumn(who.Role)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
        SELECT `+conversationColumns+`
        FROM conversations
        WHERE `+column+` = $1
        ORDER BY updated_at DESC, id DESC
        LIMIT $2
    `, who.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", classify(err))
	}
	defer rows.Close()

	out := make([]domain.Conversation, 0, limit)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		out = append(out, *c)
	}
	return out, classify(rows.Err())
}

// InsertMessage appends a message and fills its id and timestamp.
func (r *ChatRepo) InsertMessage(ctx context.Context, m *domain.ChatMessage) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO messages (conversation_id, sender_role, sender_id, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, read, created_at
    `, m.ConversationID, string(m.SenderRole), m.SenderID, m.Body).Scan(&m.ID, &m.Read, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", classify(err))
	}
	return nil
}

// UpdatePreview stores the last message summary and bumps the unread counter
// of the receiving side.
func (r *ChatRepo) UpdatePreview(ctx context.Context, p domain.ConversationPreview) error {
	column, err := unreadColumn(p.UnreadFor)
	if err != nil {
		return err
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE conversations
        SET last_message     = $2,
            last_sender_role = $3,
            last_message_at  = $4,
            `+column+`       = `+column+` + 1,
            updated_at       = now()
        WHERE id = $1
    `, p.ConversationID, p.Body, string(p.SenderRole), p.At)
	if err != nil {
		return fmt.Errorf("update conversation %d preview: %w", p.ConversationID, classify(err))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("conversation %d not found", p.ConversationID)
	}
	return nil
}

// MarkRead flips the read flag on the messages reader received and resets the
// reader's unread counter. It returns the number of messages marked.
func (r *ChatRepo) MarkRead(ctx context.Context, conversationID int64, reader domain.Identity) (int64, error) {
	column, err := unreadColumn(reader.Role)
	if err != nil {
		return 0, err
	}
	var marked int64
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
            UPDATE messages
            SET read = true
            WHERE conversation_id = $1 AND sender_role <> $2 AND NOT read
        `, conversationID, string(reader.Role))
		if err != nil {
			return err
		}
		marked = ct.RowsAffected()
		_, err = tx.Exec(ctx,
			`UPDATE conversations SET `+column+` = 0, updated_at = now() WHERE id = $1`, conversationID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("mark conversation %d read: %w", conversationID, classify(err))
	}
	return marked, nil
}

// ListMessages returns up to limit messages older than before (0 means the
// newest), in chronological order.
func (r *ChatRepo) ListMessages(ctx context.Context, conversationID int64, limit int, before int64) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, conversation_id, sender_role, sender_id, body, read, created_at
        FROM messages
        WHERE conversation_id = $1 AND ($2::bigint = 0 OR id < $2)
        ORDER BY id DESC
        LIMIT $3
    `, conversationID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", classify(err))
	}
	defer rows.Close()

	out := make([]domain.ChatMessage, 0, limit)
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderRole, &m.SenderID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", classify(err))
	}
	slices.Reverse(out)
	return out, nil
}

func unreadColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleCustomer:
		return "customer_unread", nil
	case domain.RoleOwner:
		return "owner_unread", nil
	default:
		return "", fmt.Errorf("role %q has no unread counter", role)
	}
}

func participantColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleCustomer:
		return "customer_id", nil
	case domain.RoleOwner:
		return "owner_id", nil
	default:
		return "", fmt.Errorf("role %q does not take part in conversations", role)
	}
}
