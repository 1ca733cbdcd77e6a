package realtime

import (
	"sync"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// BroadcastResult counts per-connection outcomes of a broadcast.
type BroadcastResult struct {
	Delivered int
	Failed    int
}

// Registry maps each identity of a role to its most recent connection.
type Registry struct {
	mu     sync.RWMutex
	byRole map[domain.Role]map[int64]Conn

	logger   logx.Logger
	observer Observer
}

// NewRegistry creates an empty Registry. A nil observer disables statistics.
func NewRegistry(logger logx.Logger, observer Observer) *Registry {
	if logger == nil {
		logger = logx.Nop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Registry{
		byRole:   make(map[domain.Role]map[int64]Conn),
		logger:   logger,
		observer: observer,
	}
}

// Register maps id to conn, replacing any previous connection without closing it.
func (r *Registry) Register(id domain.Identity, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.byRole[id.Role]
	if !ok {
		entries = make(map[int64]Conn)
		r.byRole[id.Role] = entries
	}
	prev, existed := entries[id.ID]
	entries[id.ID] = conn
	if !existed {
		r.observer.ConnectionDelta(string(id.Role), 1)
		return
	}
	if prev.ID() != conn.ID() {
		r.logger.Debug("connection replaced",
			logx.Identity("identity", id),
			logx.String("prev_conn", prev.ID()),
			logx.String("conn", conn.ID()),
		)
	}
}

// Lookup returns the live connection of id, if any.
func (r *Registry) Lookup(id domain.Identity) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byRole[id.Role][id.ID]
	return conn, ok
}

// Unregister drops conn's entry only while the entry still points at conn.
// It reports whether an entry was removed.
func (r *Registry) Unregister(conn Conn) bool {
	id := conn.Identity()

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.byRole[id.Role]
	cur, ok := entries[id.ID]
	if !ok || cur.ID() != conn.ID() {
		return false
	}
	delete(entries, id.ID)
	r.observer.ConnectionDelta(string(id.Role), -1)
	return true
}

// Broadcast pushes env to every connection of role. A failing connection
// does not stop delivery to the others.
func (r *Registry) Broadcast(role domain.Role, env Envelope) BroadcastResult {
	var res BroadcastResult
	for _, conn := range r.snapshot(role) {
		err := conn.Send(env)
		r.observer.Push(string(env.Type), err)
		if err != nil {
			res.Failed++
			r.logger.Debug("broadcast push failed",
				logx.String("event", string(env.Type)),
				logx.String("conn", conn.ID()),
				logx.Err(err),
			)
			continue
		}
		res.Delivered++
	}
	return res
}

// Count returns the number of registered identities of role.
func (r *Registry) Count(role domain.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byRole[role])
}

func (r *Registry) snapshot(role domain.Role) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.byRole[role]
	out := make([]Conn, 0, len(entries))
	for _, c := range entries {
		out = append(out, c)
	}
	return out
}
