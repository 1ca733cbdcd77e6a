package realtime

import (
	"errors"

	"food-delivery-dispatch/internal/domain"
)

// ErrOffline is returned by targeted pushes when the recipient has no live connection.
var ErrOffline = errors.New("recipient offline")

// Conn is one live transport session bound to exactly one identity.
type Conn interface {
	// ID is unique per connection, distinct across reconnects of the same identity.
	ID() string
	Identity() domain.Identity
	// Send enqueues env for delivery without waiting for the peer.
	Send(env Envelope) error
}

// Envelope is the outbound wire frame.
type Envelope struct {
	Type    domain.EventType `json:"type"`
	Payload any              `json:"payload,omitempty"`
}

// Observer receives registry and push statistics; *metrics.Dispatch satisfies it.
type Observer interface {
	ConnectionDelta(role string, delta float64)
	Push(event string, err error)
}

type nopObserver struct{}

func (nopObserver) ConnectionDelta(string, float64) {}
func (nopObserver) Push(string, error)              {}
