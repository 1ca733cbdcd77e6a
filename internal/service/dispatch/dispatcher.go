package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"food-delivery-dispatch/internal/apperr"
	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

// Dispatcher routes chat messages and delivery events to live connections.
// Durable rows are always written before the matching push.
type Dispatcher struct {
	chat          ChatStore
	notifications NotificationStore
	hub           Hub
	outbound      Outbound
	metrics       Recorder

	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time

	convLocks stripedMutex
	inflight  sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A nil outbound disables email/SMS and a
// nil recorder disables statistics.
func NewDispatcher(chat ChatStore, notifications NotificationStore, hub Hub, outbound Outbound, metrics Recorder, timeout time.Duration, logger logx.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Dispatcher{
		chat:             chat,
		notifications:    notifications,
		hub:              hub,
		outbound:         outbound,
		metrics:          metrics,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.operationTimeout)
}

// Wait blocks until every in-flight email/SMS send has finished.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// notify persists a notification for one recipient, then pushes ev to the
// recipient's live connection. The push is best effort.
func (d *Dispatcher) notify(ctx context.Context, n *domain.Notification, ev func(n *domain.Notification) realtime.Envelope) error {
	if err := d.notifications.Insert(ctx, n); err != nil {
		d.logger.Error("persist notification failed",
			logx.Identity("recipient", n.Recipient),
			logx.String("type", string(n.Type)),
			logx.Err(err),
		)
		return fmt.Errorf("persist %s notification for %s: %w", n.Type, n.Recipient, err)
	}
	d.metrics.Notification(string(n.Type))
	d.push(n.Recipient, ev(n))
	return nil
}

// push is fire-and-forget; an offline recipient is not an error.
func (d *Dispatcher) push(to domain.Identity, env realtime.Envelope) {
	err := d.hub.Push(to, env)
	if err == nil || errors.Is(err, realtime.ErrOffline) {
		return
	}
	d.logger.Debug("push failed",
		logx.Identity("recipient", to),
		logx.String("event", string(env.Type)),
		logx.Err(err),
	)
}

// sendOutbound hands msg to the relay in the background.
func (d *Dispatcher) sendOutbound(msg domain.OutboundMessage) {
	if d.outbound == nil {
		return
	}
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.operationTimeout)
		defer cancel()
		if err := d.outbound.Send(ctx, msg); err != nil {
			d.logger.Warn("outbound message failed",
				logx.String("channel", string(msg.Channel)),
				logx.Identity("recipient", msg.Recipient),
				logx.Err(err),
			)
		}
	}()
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}

// conversationFor loads a conversation and checks that who takes part in it.
func (d *Dispatcher) conversationFor(ctx context.Context, who domain.Identity, conversationID int64) (*domain.Conversation, error) {
	if conversationID <= 0 {
		return nil, fmt.Errorf("conversation id must be positive: %w", apperr.ErrInvalid)
	}
	if !who.Valid() {
		return nil, fmt.Errorf("invalid identity %s: %w", who, apperr.ErrInvalid)
	}
	conv, err := d.chat.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation %d: %w", conversationID, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %d: %w", conversationID, apperr.ErrNotFound)
	}
	if !conv.Participant(who) {
		return nil, fmt.Errorf("%s is not in conversation %d: %w", who, conversationID, apperr.ErrForbidden)
	}
	return conv, nil
}
