package realtime

import (
	"sync"

	"food-delivery-dispatch/internal/domain"
)

// Rooms tracks which connections currently view which conversation.
type Rooms struct {
	mu      sync.RWMutex
	members map[int64]map[string]Conn
	// joined is the reverse index used to clear a closed connection.
	joined map[string]map[int64]struct{}
}

// NewRooms creates an empty membership table.
func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[int64]map[string]Conn),
		joined:  make(map[string]map[int64]struct{}),
	}
}

// Join adds conn to the conversation room. Joining twice is a no-op.
func (r *Rooms) Join(conversationID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.members[conversationID]
	if !ok {
		room = make(map[string]Conn)
		r.members[conversationID] = room
	}
	room[conn.ID()] = conn

	convs, ok := r.joined[conn.ID()]
	if !ok {
		convs = make(map[int64]struct{})
		r.joined[conn.ID()] = convs
	}
	convs[conversationID] = struct{}{}
}

// Leave removes conn from the conversation room.
func (r *Rooms) Leave(conversationID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(conversationID, conn.ID())
}

// LeaveAll removes conn from every room and returns the rooms it left.
func (r *Rooms) LeaveAll(conn Conn) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	convs := r.joined[conn.ID()]
	left := make([]int64, 0, len(convs))
	for id := range convs {
		left = append(left, id)
	}
	for _, id := range left {
		r.leaveLocked(id, conn.ID())
	}
	return left
}

// MembersOf returns a snapshot of the room's connections.
func (r *Rooms) MembersOf(conversationID int64) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room := r.members[conversationID]
	out := make([]Conn, 0, len(room))
	for _, c := range room {
		out = append(out, c)
	}
	return out
}

// HasIdentity reports whether any connection of id is inside the room.
func (r *Rooms) HasIdentity(conversationID int64, id domain.Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.members[conversationID] {
		if c.Identity() == id {
			return true
		}
	}
	return false
}

// RoomsOf returns the conversations conn has joined.
func (r *Rooms) RoomsOf(conn Conn) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, 0, len(r.joined[conn.ID()]))
	for id := range r.joined[conn.ID()] {
		out = append(out, id)
	}
	return out
}

func (r *Rooms) leaveLocked(conversationID int64, connID string) {
	if room, ok := r.members[conversationID]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(r.members, conversationID)
		}
	}
	if convs, ok := r.joined[connID]; ok {
		delete(convs, conversationID)
		if len(convs) == 0 {
			delete(r.joined, connID)
		}
	}
}
