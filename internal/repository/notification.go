package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery-dispatch/internal/domain"
)

// NotificationRepo stores durable per-recipient notifications.
type NotificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Insert appends n and fills its id and timestamp.
func (r *NotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	payload := []byte(n.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	err := r.db.QueryRow(ctx, `
        INSERT INTO notifications (recipient_role, recipient_id, type, title, body, payload)
        VALUES ($1, $2, $3, $4, $5, $6::jsonb)
        RETURNING id, created_at
    `, string(n.Recipient.Role), n.Recipient.ID, string(n.Type), n.Title, n.Body, string(payload),
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification for %s: %w", n.Recipient, classify(err))
	}
	return nil
}

// List returns the recipient's notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context, recipient domain.Identity, limit int, unreadOnly bool) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, recipient_role, recipient_id, type, title, body, payload, read, created_at
        FROM notifications
        WHERE recipient_role = $1 AND recipient_id = $2 AND (NOT $3 OR NOT read)
        ORDER BY id DESC
        LIMIT $4
    `, string(recipient.Role), recipient.ID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", classify(err))
	}
	defer rows.Close()

	out := make([]domain.Notification, 0, limit)
	for rows.Next() {
		var (
			n       domain.Notification
			payload []byte
		)
		if err := rows.Scan(&n.ID, &n.Recipient.Role, &n.Recipient.ID, &n.Type, &n.Title, &n.Body, &payload, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Payload = payload
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", classify(err))
	}
	return out, nil
}

// MarkRead marks one notification of the recipient as read. It reports false
// when the recipient has no such notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, recipient domain.Identity, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE notifications
        SET read = true
        WHERE id = $1 AND recipient_role = $2 AND recipient_id = $3
    `, id, string(recipient.Role), recipient.ID)
	if err != nil {
		return false, fmt.Errorf("mark notification %d read: %w", id, classify(err))
	}
	return ct.RowsAffected() > 0, nil
}
