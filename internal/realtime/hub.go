package realtime

import (
	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// Hub ties the per-role registry and the conversation rooms to the
// lifecycle of a connection.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	logger   logx.Logger
	observer Observer
}

// NewHub creates a Hub around a fresh registry and room table.
func NewHub(logger logx.Logger, observer Observer) *Hub {
	if logger == nil {
		logger = logx.Nop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Hub{
		registry: NewRegistry(logger, observer),
		rooms:    NewRooms(),
		logger:   logger,
		observer: observer,
	}
}

// Connect registers an authenticated connection under its identity.
func (h *Hub) Connect(conn Conn) {
	h.registry.Register(conn.Identity(), conn)
	h.logger.Info("connection registered",
		logx.Identity("identity", conn.Identity()),
		logx.String("conn", conn.ID()),
	)
}

// Disconnect clears every trace of conn. It must be called when the transport closes.
func (h *Hub) Disconnect(conn Conn) {
	left := h.rooms.LeaveAll(conn)
	removed := h.registry.Unregister(conn)
	h.logger.Info("connection closed",
		logx.Identity("identity", conn.Identity()),
		logx.String("conn", conn.ID()),
		logx.Int("rooms_left", len(left)),
		logx.Bool("registry_entry_removed", removed),
	)
}

// Lookup returns the live connection of id.
func (h *Hub) Lookup(id domain.Identity) (Conn, bool) {
	return h.registry.Lookup(id)
}

// Push sends env to id's live connection.
func (h *Hub) Push(id domain.Identity, env Envelope) error {
	conn, ok := h.registry.Lookup(id)
	if !ok {
		return ErrOffline
	}
	err := conn.Send(env)
	h.observer.Push(string(env.Type), err)
	return err
}

// Broadcast pushes env to every live connection of role.
func (h *Hub) Broadcast(role domain.Role, env Envelope) BroadcastResult {
	return h.registry.Broadcast(role, env)
}

// Join adds conn to a conversation room.
func (h *Hub) Join(conversationID int64, conn Conn) {
	h.rooms.Join(conversationID, conn)
}

// Leave removes conn from a conversation room.
func (h *Hub) Leave(conversationID int64, conn Conn) {
	h.rooms.Leave(conversationID, conn)
}

// MembersOf returns the connections inside a conversation room.
func (h *Hub) MembersOf(conversationID int64) []Conn {
	return h.rooms.MembersOf(conversationID)
}

// InRoom reports whether id has a connection inside the conversation room.
func (h *Hub) InRoom(conversationID int64, id domain.Identity) bool {
	return h.rooms.HasIdentity(conversationID, id)
}

// PushRoom sends env to every member of a room and returns the per-connection outcome.
func (h *Hub) PushRoom(conversationID int64, env Envelope) BroadcastResult {
	var res BroadcastResult
	for _, conn := range h.rooms.MembersOf(conversationID) {
		err := conn.Send(env)
		h.observer.Push(string(env.Type), err)
		if err != nil {
			res.Failed++
			h.logger.Debug("room push failed",
				logx.Int64("conversation_id", conversationID),
				logx.String("conn", conn.ID()),
				logx.Err(err),
			)
			continue
		}
		res.Delivered++
	}
	return res
}
