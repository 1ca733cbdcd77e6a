// Package realtimetest provides an in-memory realtime.Conn for tests.
package realtimetest

import (
	"sync"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/realtime"
)

// Conn records every envelope sent to it.
type Conn struct {
	id       string
	identity domain.Identity

	mu   sync.Mutex
	sent []realtime.Envelope
	err  error
}

// NewConn creates a recording connection.
func NewConn(id string, identity domain.Identity) *Conn {
	return &Conn{id: id, identity: identity}
}

// ID returns the connection id.
func (c *Conn) ID() string { return c.id }

// Identity returns the bound identity.
func (c *Conn) Identity() domain.Identity { return c.identity }

// Send records env, or returns the configured failure.
func (c *Conn) Send(env realtime.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, env)
	return nil
}

// FailWith makes every later Send return err.
func (c *Conn) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Sent returns a copy of the recorded envelopes.
func (c *Conn) Sent() []realtime.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Envelope(nil), c.sent...)
}

// Types returns the recorded event types in send order.
func (c *Conn) Types() []domain.EventType {
	sent := c.Sent()
	out := make([]domain.EventType, 0, len(sent))
	for _, e := range sent {
		out = append(out, e.Type)
	}
	return out
}

// Of returns the recorded envelopes of one type.
func (c *Conn) Of(t domain.EventType) []realtime.Envelope {
	var out []realtime.Envelope
	for _, e := range c.Sent() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

var _ realtime.Conn = (*Conn)(nil)
