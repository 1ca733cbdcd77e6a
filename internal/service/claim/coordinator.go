package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/ports/deliverytx"
)

const listLimit = 100

// Claim outcomes reported to the Recorder.
const (
	ResultSuccess        = "success"
	ResultAlreadyClaimed = "already_claimed"
	ResultNotFound       = "not_found"
	ResultError          = "error"
)

// Coordinator assigns deliveries to drivers and walks them through their
// lifecycle. Exclusivity is enforced by the store, not by in-process locks.
type Coordinator struct {
	store            Store
	quoter           FeeQuoter
	sink             EventSink
	metrics          Recorder
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewCoordinator creates a Coordinator. A nil recorder disables statistics.
func NewCoordinator(store Store, quoter FeeQuoter, sink EventSink, metrics Recorder, timeout time.Duration, logger logx.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Coordinator{
		store:            store,
		quoter:           quoter,
		sink:             sink,
		metrics:          metrics,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.operationTimeout)
}

// ListAvailable returns unclaimed deliveries, oldest first.
func (c *Coordinator) ListAvailable(ctx context.Context) ([]domain.DeliveryClaim, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	list, err := c.store.ListAvailable(ctx, listLimit)
	if err != nil {
		return nil, storeErr("list available deliveries", err)
	}
	return list, nil
}

// DriverStats returns the delivered count and payout total of a driver.
func (c *Coordinator) DriverStats(ctx context.Context, driverID int64) (domain.DriverStats, error) {
	if driverID <= 0 {
		return domain.DriverStats{}, fmt.Errorf("driver id must be positive: %w", apperr.ErrInvalid)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, cents, err := c.store.DriverStats(ctx, driverID)
	if err != nil {
		return domain.DriverStats{}, storeErr("load driver stats", err)
	}
	return domain.DriverStats{DriverID: driverID, Deliveries: n, EarningsCents: cents}, nil
}

// Claim gives orderID to driverID if nobody holds it yet. Under any number of
// concurrent callers exactly one succeeds; the others get
// apperr.ErrAlreadyClaimed.
func (c *Coordinator) Claim(ctx context.Context, orderID string, driverID int64) (domain.DeliveryClaim, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.DeliveryClaim{}, fmt.Errorf("order_id is required: %w", apperr.ErrInvalid)
	}
	if driverID <= 0 {
		return domain.DeliveryClaim{}, fmt.Errorf("driver id must be positive: %w", apperr.ErrInvalid)
	}

	txCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var claimed domain.DeliveryClaim
	err := c.store.WithTx(txCtx, func(tx deliverytx.Repository) error {
		got, err := tx.CompareAndSetClaim(txCtx, orderID, driverID, c.now())
		if err != nil {
			return err
		}
		if got != nil {
			claimed = *got
			return nil
		}
		existing, err := tx.GetByOrderID(txCtx, orderID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.ErrNotFound
		}
		return apperr.ErrAlreadyClaimed
	})

	switch {
	case err == nil:
		c.metrics.Claim(ResultSuccess)
	case errors.Is(err, apperr.ErrAlreadyClaimed):
		c.metrics.Claim(ResultAlreadyClaimed)
		c.logger.Info("claim lost",
			logx.String("event", "claim_lost"),
			logx.String("order_id", orderID),
			logx.Int64("driver_id", driverID),
		)
		return domain.DeliveryClaim{}, err
	case errors.Is(err, apperr.ErrNotFound):
		c.metrics.Claim(ResultNotFound)
		return domain.DeliveryClaim{}, fmt.Errorf("order %q: %w", orderID, err)
	default:
		c.metrics.Claim(ResultError)
		return domain.DeliveryClaim{}, storeErr(fmt.Sprintf("claim order %q", orderID), err)
	}

	c.logger.Info("order claimed",
		logx.String("event", "order_claimed"),
		logx.String("order_id", orderID),
		logx.Int64("delivery_id", claimed.ID),
		logx.Int64("driver_id", driverID),
	)
	c.publish(ctx, claimed)
	return claimed, nil
}

// Advance moves a delivery held by driverID to status. Requesting the current
// status again succeeds without side effects.
func (c *Coordinator) Advance(ctx context.Context, deliveryID, driverID int64, status domain.DeliveryStatus, notes *string) (domain.AdvanceResult, error) {
	if deliveryID <= 0 || driverID <= 0 {
		return domain.AdvanceResult{}, fmt.Errorf("ids must be positive: %w", apperr.ErrInvalid)
	}
	if !status.Valid() || status == domain.DeliveryAvailable {
		return domain.AdvanceResult{}, fmt.Errorf("unknown target status %q: %w", status, apperr.ErrInvalid)
	}

	txCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var res domain.AdvanceResult
	err := c.store.WithTx(txCtx, func(tx deliverytx.Repository) error {
		cur, err := tx.GetForUpdate(txCtx, deliveryID)
		if err != nil {
			return err
		}
		if cur == nil {
			return fmt.Errorf("delivery %d: %w", deliveryID, apperr.ErrNotFound)
		}
		if !cur.AssignedTo(driverID) {
			return fmt.Errorf("delivery %d is not assigned to driver %d: %w", deliveryID, driverID, apperr.ErrForbidden)
		}
		if cur.Status == status {
			res = domain.AdvanceResult{Claim: *cur, Replayed: true}
			return nil
		}
		if !cur.Status.CanAdvanceTo(status) {
			return fmt.Errorf("%s -> %s: %w", cur.Status, status, apperr.ErrInvalidTransition)
		}

		now := c.now()
		updated, err := tx.UpdateStatus(txCtx, deliveryID, status, notes, now)
		if err != nil {
			return err
		}
		if status == domain.DeliveryDelivered {
			if err := recordEarnings(txCtx, tx, updated, now); err != nil {
				return err
			}
		}
		res = domain.AdvanceResult{Claim: *updated}
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return domain.AdvanceResult{}, err
		}
		return domain.AdvanceResult{}, storeErr(fmt.Sprintf("advance delivery %d", deliveryID), err)
	}

	if res.Replayed {
		c.logger.Debug("status replayed",
			logx.Int64("delivery_id", deliveryID),
			logx.String("status", string(status)),
		)
		return res, nil
	}

	c.metrics.Transition(string(status))
	c.logger.Info("delivery status changed",
		logx.String("event", "delivery_status_changed"),
		logx.Int64("delivery_id", deliveryID),
		logx.String("order_id", res.Claim.OrderID),
		logx.Int64("driver_id", driverID),
		logx.String("status", string(status)),
	)
	c.publish(ctx, res.Claim)
	return res, nil
}

// EarningsKey is the idempotency key of the earnings entry of a delivery.
func EarningsKey(deliveryID int64, status domain.DeliveryStatus) string {
	return fmt.Sprintf("delivery:%d:%s", deliveryID, status)
}

func recordEarnings(ctx context.Context, tx deliverytx.Repository, d *domain.DeliveryClaim, at time.Time) error {
	if d.DriverID == nil {
		return fmt.Errorf("delivered claim %d has no driver", d.ID)
	}
	inserted, err := tx.InsertEarnings(ctx, domain.EarningsEntry{
		IdempotencyKey: EarningsKey(d.ID, domain.DeliveryDelivered),
		DeliveryID:     d.ID,
		DriverID:       *d.DriverID,
		DeliveryFee:    d.Fee.DeliveryFee,
		DriverPayout:   d.Fee.DriverPayout,
		Commission:     d.Fee.Commission,
		CreatedAt:      at,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return tx.IncrementDriverStats(ctx, *d.DriverID, d.Fee.DriverPayout)
}

// CreateFromPayment opens a delivery for a paid order that needs one. It
// reports whether a new claim was created; redelivered events return the
// existing state with created=false.
func (c *Coordinator) CreateFromPayment(ctx context.Context, p domain.PaymentConfirmed) (domain.DeliveryClaim, bool, error) {
	p.OrderID = strings.TrimSpace(p.OrderID)
	if p.OrderID == "" || p.CustomerID <= 0 || p.OwnerID <= 0 || p.RestaurantID <= 0 {
		return domain.DeliveryClaim{}, false, fmt.Errorf("incomplete payment event: %w", apperr.ErrInvalid)
	}
	if !p.RequiresDelivery {
		return domain.DeliveryClaim{}, false, nil
	}

	claim := domain.DeliveryClaim{
		OrderID:      p.OrderID,
		CustomerID:   p.CustomerID,
		OwnerID:      p.OwnerID,
		RestaurantID: p.RestaurantID,
		Pickup:       p.RestaurantAddress,
		Dropoff:      p.CustomerAddress,
		Fee:          c.quoter.Quote(p.RestaurantAddress, p.CustomerAddress),
		Status:       domain.DeliveryAvailable,
		CreatedAt:    c.now(),
	}

	txCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var created bool
	err := c.store.WithTx(txCtx, func(tx deliverytx.Repository) error {
		var err error
		created, err = tx.InsertAvailable(txCtx, &claim)
		if err != nil || created {
			return err
		}
		existing, err := tx.GetByOrderID(txCtx, p.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			claim = *existing
		}
		return nil
	})
	if err != nil {
		return domain.DeliveryClaim{}, false, storeErr(fmt.Sprintf("create delivery for order %q", p.OrderID), err)
	}
	if !created {
		c.logger.Debug("delivery already exists", logx.String("order_id", p.OrderID))
		return claim, false, nil
	}

	c.logger.Info("delivery available",
		logx.String("event", "delivery_available"),
		logx.String("order_id", p.OrderID),
		logx.Int64("delivery_id", claim.ID),
		logx.Int64("delivery_fee", claim.Fee.DeliveryFee),
	)
	c.publish(ctx, claim)
	return claim, true, nil
}

// publish hands a committed state to the sink. The transition already
// happened, so a sink failure is logged and not returned.
func (c *Coordinator) publish(ctx context.Context, claim domain.DeliveryClaim) {
	if c.sink == nil {
		return
	}
	// The state change is committed; its notifications must outlive the caller.
	ctx, cancel := c.withTimeout(context.WithoutCancel(ctx))
	defer cancel()
	if err := c.sink.Publish(ctx, domain.NewDeliveryEvent(claim)); err != nil {
		c.logger.Error("publish delivery event failed",
			logx.Int64("delivery_id", claim.ID),
			logx.String("status", string(claim.Status)),
			logx.Err(err),
		)
	}
}

func isDomainErr(err error) bool {
	return errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrForbidden) ||
		errors.Is(err, apperr.ErrConflict) ||
		errors.Is(err, apperr.ErrInvalid)
}

// storeErr wraps a store failure. Expired deadlines count as unavailable
// so that callers may retry.
func storeErr(op string, err error) error {
	if !errors.Is(err, apperr.ErrUnavailable) && errors.Is(err, context.DeadlineExceeded) {
		err = apperr.Unavailable(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
