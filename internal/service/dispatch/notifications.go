package dispatch

import (
	"context"
	"fmt"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/domain"
)

// ListNotifications returns the caller's notifications, newest first.
func (d *Dispatcher) ListNotifications(ctx context.Context, who domain.Identity, limit int, unreadOnly bool) ([]domain.Notification, error) {
	if !who.Valid() {
		return nil, fmt.Errorf("invalid identity %s: %w", who, apperr.ErrInvalid)
	}
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	list, err := d.notifications.List(ctx, who, pageSize(limit), unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (d *Dispatcher) MarkNotificationRead(ctx context.Context, who domain.Identity, id int64) error {
	if id <= 0 {
		return fmt.Errorf("notification id must be positive: %w", apperr.ErrInvalid)
	}
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	ok, err := d.notifications.MarkRead(ctx, who, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("notification %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
