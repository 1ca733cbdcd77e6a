package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// Inbound frame types.
const (
	FramePing              = "ping"
	FrameJoinConversation  = "join_conversation"
	FrameLeaveConversation = "leave_conversation"
	FrameSendMessage       = "send_message"
	FrameMarkRead          = "mark_read"
)

// Frame is an inbound client message.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// HandlerFunc serves one inbound frame type.
type HandlerFunc func(ctx context.Context, conn Conn, data json.RawMessage) error

// ErrorPayload is sent back to a connection whose frame failed.
type ErrorPayload struct {
	Frame string `json:"frame"`
	Error string `json:"error"`
}

// Protocol dispatches inbound frames by type, independent of the transport.
type Protocol struct {
	handlers map[string]HandlerFunc
	logger   logx.Logger
}

// NewProtocol returns a Protocol that already answers ping frames.
func NewProtocol(logger logx.Logger) *Protocol {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Protocol{handlers: make(map[string]HandlerFunc), logger: logger}
	p.Handle(FramePing, func(_ context.Context, conn Conn, _ json.RawMessage) error {
		return conn.Send(Envelope{Type: domain.EventPong})
	})
	return p
}

// Handle binds fn to a frame type, replacing any previous binding.
func (p *Protocol) Handle(frameType string, fn HandlerFunc) {
	p.handlers[frameType] = fn
}

// Dispatch decodes raw and runs the matching handler. Failures are reported to
// the sender as an error envelope and never returned.
func (p *Protocol) Dispatch(ctx context.Context, conn Conn, raw []byte) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		p.reply(conn, "", "invalid frame")
		return
	}
	f.Type = strings.TrimSpace(f.Type)

	fn, ok := p.handlers[f.Type]
	if !ok {
		p.reply(conn, f.Type, "unknown frame type")
		return
	}
	if err := fn(ctx, conn, f.Data); err != nil {
		msg := errorMessage(err)
		if msg == "internal error" {
			p.logger.Error("frame handler failed",
				logx.String("frame", f.Type),
				logx.String("conn", conn.ID()),
				logx.Err(err),
			)
		}
		p.reply(conn, f.Type, msg)
	}
}

func (p *Protocol) reply(conn Conn, frame, msg string) {
	err := conn.Send(Envelope{Type: domain.EventError, Payload: ErrorPayload{Frame: frame, Error: msg}})
	if err != nil {
		p.logger.Debug("error reply dropped", logx.String("conn", conn.ID()), logx.Err(err))
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return "invalid input"
	case errors.Is(err, apperr.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return "not found"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrUnavailable):
		return "temporarily unavailable"
	default:
		return "internal error"
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeData unmarshals frame data into T and validates its struct tags.
// Any failure is reported as apperr.ErrInvalid.
func DecodeData[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 {
		return v, fmt.Errorf("empty frame data: %w", apperr.ErrInvalid)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode frame data: %w", apperr.ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return v, fmt.Errorf("validate frame data: %s: %w", err.Error(), apperr.ErrInvalid)
	}
	return v, nil
}
