package claim_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/ports/deliverytx"
)

// memStore is an in-memory Store whose single-row operations are atomic, the
// way a row-level UPDATE ... RETURNING is. GetForUpdate holds a row lock until
// the transaction ends.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[int64]domain.DeliveryClaim
	earnings map[string]domain.EarningsEntry
	stats    map[int64][2]int64

	rowLocks sync.Map // int64 -> *sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		rows:     make(map[int64]domain.DeliveryClaim),
		earnings: make(map[string]domain.EarningsEntry),
		stats:    make(map[int64][2]int64),
	}
}

func (s *memStore) seed(c domain.DeliveryClaim) domain.DeliveryClaim {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	} else if c.ID > s.nextID {
		s.nextID = c.ID
	}
	if c.Status == "" {
		c.Status = domain.DeliveryAvailable
	}
	s.rows[c.ID] = c
	return c
}

func (s *memStore) get(id int64) domain.DeliveryClaim {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id]
}

func (s *memStore) earningsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.earnings)
}

func (s *memStore) driverStats(driverID int64) (deliveries, earnings int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats[driverID]
	return st[0], st[1]
}

func (s *memStore) DriverStats(_ context.Context, driverID int64) (int64, int64, error) {
	n, cents := s.driverStats(driverID)
	return n, cents, nil
}

func (s *memStore) ListAvailable(_ context.Context, limit int) ([]domain.DeliveryClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DeliveryClaim
	for _, c := range s.rows {
		if c.Status == domain.DeliveryAvailable {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	tx := &memTx{s: s}
	defer tx.release()
	return fn(tx)
}

type memTx struct {
	s      *memStore
	locked []*sync.Mutex
}

func (t *memTx) release() {
	for _, l := range t.locked {
		l.Unlock()
	}
}

func (t *memTx) CompareAndSetClaim(_ context.Context, orderID string, driverID int64, at time.Time) (*domain.DeliveryClaim, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, c := range t.s.rows {
		if c.OrderID != orderID || c.Status != domain.DeliveryAvailable {
			continue
		}
		d := driverID
		c.Status = domain.DeliveryClaimed
		c.DriverID = &d
		c.ClaimedAt = &at
		t.s.rows[id] = c
		return &c, nil
	}
	return nil, nil
}

func (t *memTx) GetByOrderID(_ context.Context, orderID string) (*domain.DeliveryClaim, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, c := range t.s.rows {
		if c.OrderID == orderID {
			return &c, nil
		}
	}
	return nil, nil
}

func (t *memTx) GetForUpdate(_ context.Context, id int64) (*domain.DeliveryClaim, error) {
	l, _ := t.s.rowLocks.LoadOrStore(id, &sync.Mutex{})
	mu := l.(*sync.Mutex)
	mu.Lock()
	t.locked = append(t.locked, mu)

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	c, ok := t.s.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *memTx) UpdateStatus(_ context.Context, id int64, status domain.DeliveryStatus, notes *string, at time.Time) (*domain.DeliveryClaim, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	c := t.s.rows[id]
	c.Status = status
	if notes != nil {
		c.Notes = *notes
	}
	switch status {
	case domain.DeliveryPickedUp:
		c.PickedUpAt = &at
	case domain.DeliveryInTransit:
		c.InTransitAt = &at
	case domain.DeliveryDelivered:
		c.DeliveredAt = &at
	case domain.DeliveryCancelled:
		c.CancelledAt = &at
	}
	t.s.rows[id] = c
	return &c, nil
}

func (t *memTx) InsertEarnings(_ context.Context, e domain.EarningsEntry) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.earnings[e.IdempotencyKey]; ok {
		return false, nil
	}
	t.s.earnings[e.IdempotencyKey] = e
	return true, nil
}

func (t *memTx) IncrementDriverStats(_ context.Context, driverID, payout int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	st := t.s.stats[driverID]
	t.s.stats[driverID] = [2]int64{st[0] + 1, st[1] + payout}
	return nil
}

func (t *memTx) InsertAvailable(_ context.Context, c *domain.DeliveryClaim) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, existing := range t.s.rows {
		if existing.OrderID == c.OrderID {
			return false, nil
		}
	}
	t.s.nextID++
	c.ID = t.s.nextID
	c.Status = domain.DeliveryAvailable
	t.s.rows[c.ID] = *c
	return true, nil
}

// recordingSink collects published events.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.DeliveryEvent
}

func (r *recordingSink) Publish(_ context.Context, e domain.DeliveryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) Events() []domain.DeliveryEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.DeliveryEvent(nil), r.events...)
}
