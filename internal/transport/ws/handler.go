package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

// IdentityFunc extracts the caller identity asserted by the upstream gateway.
type IdentityFunc func(r *http.Request) (domain.Identity, bool)

// Handler upgrades authenticated requests and runs the session until it closes.
type Handler struct {
	hub      *realtime.Hub
	protocol *realtime.Protocol
	identify IdentityFunc
	opts     Options
	logger   logx.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	active map[string]*Conn
}

// NewHandler creates the upgrade handler served on GET /ws.
func NewHandler(hub *realtime.Hub, protocol *realtime.Protocol, identify IdentityFunc, opts Options, logger logx.Logger) *Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handler{
		hub:      hub,
		protocol: protocol,
		identify: identify,
		opts:     opts.withDefaults(),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy belongs to the upstream gateway.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		active: make(map[string]*Conn),
	}
}

// ServeHTTP blocks for the lifetime of the session.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(r)
	if !ok || !id.Valid() {
		http.Error(w, `{"error":"unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("websocket upgrade failed", logx.Identity("identity", id), logx.Err(err))
		return
	}

	conn := newConn(sock, id, h.opts, h.logger)
	h.track(conn)
	h.hub.Connect(conn)

	go conn.writePump()

	ctx := context.WithoutCancel(r.Context())
	conn.readPump(ctx, h.protocol.Dispatch)

	h.hub.Disconnect(conn)
	h.untrack(conn)
	conn.Close()
}

// Shutdown closes every live session. Hijacked connections are not closed by
// http.Server.Shutdown.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.active))
	for _, c := range h.active {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
	h.logger.Info("websocket sessions closed", logx.Int("count", len(conns)))
}

// Active returns the number of sessions served by this handler.
func (h *Handler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}

func (h *Handler) track(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active[c.ID()] = c
}

func (h *Handler) untrack(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.active, c.ID())
}
