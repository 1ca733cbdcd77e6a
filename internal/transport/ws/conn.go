// Package ws adapts gorilla/websocket sessions to realtime.Conn.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

var (
	// ErrSlowConsumer is returned by Send when the outbound queue is full.
	ErrSlowConsumer = errors.New("websocket send queue full")
	// ErrClosed is returned by Send after the session ended.
	ErrClosed = errors.New("websocket closed")
)

// Options tunes one websocket session.
type Options struct {
	SendBuffer      int
	PingInterval    time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int64
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.MaxMessageBytes <= 0 {
		o.MaxMessageBytes = 8 << 10
	}
	return o
}

// pongWait is how long the read side waits for any frame, pongs included.
func (o Options) pongWait() time.Duration { return 2 * o.PingInterval }

// Conn is one websocket session. Writes happen only on the write pump.
type Conn struct {
	id       string
	identity domain.Identity
	ws       *websocket.Conn
	opts     Options
	logger   logx.Logger

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newConn(sock *websocket.Conn, identity domain.Identity, opts Options, logger logx.Logger) *Conn {
	id := uuid.NewString()
	return &Conn{
		id:       id,
		identity: identity,
		ws:       sock,
		opts:     opts,
		logger:   logger.With(logx.String("conn", id), logx.Identity("identity", identity)),
		send:     make(chan []byte, opts.SendBuffer),
	}
}

// ID returns the connection UUID.
func (c *Conn) ID() string { return c.id }

// Identity returns the authenticated identity of the session.
func (c *Conn) Identity() domain.Identity { return c.identity }

// Send encodes env and queues it without blocking.
func (c *Conn) Send(env realtime.Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", env.Type, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Close ends the session. The write pump sends a close frame and exits.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("websocket write failed", logx.Err(err))
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("websocket ping failed", logx.Err(err))
				return
			}
		}
	}
}

// readPump feeds inbound frames to dispatch until the peer goes away.
func (c *Conn) readPump(ctx context.Context, dispatch func(context.Context, realtime.Conn, []byte)) {
	c.ws.SetReadLimit(c.opts.MaxMessageBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.pongWait()))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.opts.pongWait()))
	})

	for {
		kind, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn("websocket read failed", logx.Err(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.pongWait()))
		dispatch(ctx, c, msg)
	}
}

var _ realtime.Conn = (*Conn)(nil)
