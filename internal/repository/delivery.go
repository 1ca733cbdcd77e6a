package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/ports/deliverytx"
)

const deliveryColumns = `
	id, order_id, customer_id, owner_id, restaurant_id,
	pickup_address, pickup_lat, pickup_lng,
	dropoff_address, dropoff_lat, dropoff_lng,
	distance_km, delivery_fee, driver_payout, commission,
	status, driver_id, notes,
	created_at, claimed_at, picked_up_at, in_transit_at, delivered_at, cancelled_at`

func scanDelivery(row pgx.Row) (*domain.DeliveryClaim, error) {
	var c domain.DeliveryClaim
	err := row.Scan(
		&c.ID, &c.OrderID, &c.CustomerID, &c.OwnerID, &c.RestaurantID,
		&c.Pickup.Line, &c.Pickup.Lat, &c.Pickup.Lng,
		&c.Dropoff.Line, &c.Dropoff.Lat, &c.Dropoff.Lng,
		&c.Fee.DistanceKm, &c.Fee.DeliveryFee, &c.Fee.DriverPayout, &c.Fee.Commission,
		&c.Status, &c.DriverID, &c.Notes,
		&c.CreatedAt, &c.ClaimedAt, &c.PickedUpAt, &c.InTransitAt, &c.DeliveredAt, &c.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

type rollbacker interface {
	Rollback(ctx context.Context) error
}

// rollback aborts tx after cause. Both errors stay matchable.
func rollback(ctx context.Context, tx rollbacker, cause error) error {
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		return fmt.Errorf("%w (rollback tx: %w)", cause, rbErr)
	}
	return cause
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", classify(err))
	}

	// откатываем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		return rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", classify(err))
	}
	return nil
}

// ListAvailable returns unclaimed deliveries, oldest first.
func (r *DeliveryRepo) ListAvailable(ctx context.Context, limit int) ([]domain.DeliveryClaim, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE status = 'available'
        ORDER BY created_at, id
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list available deliveries: %w", classify(err))
	}
	defer rows.Close()

	out := make([]domain.DeliveryClaim, 0, limit)
	for rows.Next() {
		c, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list available deliveries: %w", classify(err))
	}
	return out, nil
}

// Get returns a delivery by id, or nil when it does not exist.
func (r *DeliveryRepo) Get(ctx context.Context, id int64) (*domain.DeliveryClaim, error) {
	c, err := scanDelivery(r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, classify(err))
	}
	return c, nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// CompareAndSetClaim - atomically claim an available delivery.
func (r *TxRepo) CompareAndSetClaim(ctx context.Context, orderID string, driverID int64, at time.Time) (*domain.DeliveryClaim, error) {
	c, err := scanDelivery(r.tx.QueryRow(ctx, `
        UPDATE deliveries
        SET status = 'claimed', driver_id = $2, claimed_at = $3
        WHERE order_id = $1 AND status = 'available'
        RETURNING `+deliveryColumns, orderID, driverID, at))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim order %q: %w", orderID, classify(err))
	}
	return c, nil
}

// GetByOrderID - get delivery by order ID.
func (r *TxRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.DeliveryClaim, error) {
	c, err := scanDelivery(r.tx.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1`, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by order %q: %w", orderID, classify(err))
	}
	return c, nil
}

// GetForUpdate - lock a delivery row for the rest of the transaction.
func (r *TxRepo) GetForUpdate(ctx context.Context, id int64) (*domain.DeliveryClaim, error) {
	c, err := scanDelivery(r.tx.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock delivery %d: %w", id, classify(err))
	}
	return c, nil
}

// UpdateStatus - set status and its transition timestamp.
func (r *TxRepo) UpdateStatus(ctx context.Context, id int64, status domain.DeliveryStatus, notes *string, at time.Time) (*domain.DeliveryClaim, error) {
	column, err := timestampColumn(status)
	if err != nil {
		return nil, err
	}
	c, err := scanDelivery(r.tx.QueryRow(ctx, `
        UPDATE deliveries
        SET status = $2,
            notes  = COALESCE($3, notes),
            `+column+` = $4
        WHERE id = $1
        RETURNING `+deliveryColumns, id, string(status), notes, at))
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("delivery %d not found", id)
		}
		return nil, fmt.Errorf("update delivery %d status: %w", id, classify(err))
	}
	return c, nil
}

func timestampColumn(status domain.DeliveryStatus) (string, error) {
	switch status {
	case domain.DeliveryClaimed:
		return "claimed_at", nil
	case domain.DeliveryPickedUp:
		return "picked_up_at", nil
	case domain.DeliveryInTransit:
		return "in_transit_at", nil
	case domain.DeliveryDelivered:
		return "delivered_at", nil
	case domain.DeliveryCancelled:
		return "cancelled_at", nil
	default:
		return "", fmt.Errorf("no timestamp for status %q", status)
	}
}

// InsertEarnings - insert the earnings entry once per idempotency key.
func (r *TxRepo) InsertEarnings(ctx context.Context, e domain.EarningsEntry) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        INSERT INTO driver_earnings
            (idempotency_key, delivery_id, driver_id, delivery_fee, driver_payout, commission, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (idempotency_key) DO NOTHING
    `, e.IdempotencyKey, e.DeliveryID, e.DriverID, e.DeliveryFee, e.DriverPayout, e.Commission, e.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert earnings %q: %w", e.IdempotencyKey, classify(err))
	}
	return ct.RowsAffected() > 0, nil
}

// IncrementDriverStats - add one delivery and its payout to the driver totals.
func (r *TxRepo) IncrementDriverStats(ctx context.Context, driverID, payout int64) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO driver_stats (driver_id, total_deliveries, total_earnings, updated_at)
        VALUES ($1, 1, $2, now())
        ON CONFLICT (driver_id) DO UPDATE
        SET total_deliveries = driver_stats.total_deliveries + 1,
            total_earnings   = driver_stats.total_earnings + EXCLUDED.total_earnings,
            updated_at       = now()
    `, driverID, payout)
	if err != nil {
		return fmt.Errorf("increment driver %d stats: %w", driverID, classify(err))
	}
	return nil
}

// InsertAvailable - insert a new available delivery unless the order already has one.
func (r *TxRepo) InsertAvailable(ctx context.Context, c *domain.DeliveryClaim) (bool, error) {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (
            order_id, customer_id, owner_id, restaurant_id,
            pickup_address, pickup_lat, pickup_lng,
            dropoff_address, dropoff_lat, dropoff_lng,
            distance_km, delivery_fee, driver_payout, commission,
            status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'available', $15)
        ON CONFLICT (order_id) DO NOTHING
        RETURNING id
    `,
		c.OrderID, c.CustomerID, c.OwnerID, c.RestaurantID,
		c.Pickup.Line, c.Pickup.Lat, c.Pickup.Lng,
		c.Dropoff.Line, c.Dropoff.Lat, c.Dropoff.Lng,
		c.Fee.DistanceKm, c.Fee.DeliveryFee, c.Fee.DriverPayout, c.Fee.Commission,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert delivery for order %q: %w", c.OrderID, classify(err))
	}
	c.Status = domain.DeliveryAvailable
	return true, nil
}

// DriverStats returns lifetime totals of a driver.
func (r *DeliveryRepo) DriverStats(ctx context.Context, driverID int64) (deliveries, earnings int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT total_deliveries, total_earnings FROM driver_stats WHERE driver_id = $1`, driverID,
	).Scan(&deliveries, &earnings)
	if err != nil {
		if IsNotFound(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("driver %d stats: %w", driverID, classify(err))
	}
	return deliveries, earnings, nil
}

var _ deliverytx.Runner = (*DeliveryRepo)(nil)
var _ deliverytx.Repository = (*TxRepo)(nil)
