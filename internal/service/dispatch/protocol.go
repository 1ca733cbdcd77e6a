package dispatch

import (
	"context"
	"encoding/json"

	"food-delivery-dispatch/internal/realtime"
)

type conversationFrame struct {
	ConversationID int64 `json:"conversation_id" validate:"required,gt=0"`
}

type sendMessageFrame struct {
	ConversationID int64  `json:"conversation_id" validate:"required,gt=0"`
	Body           string `json:"body" validate:"required"`
}

// Bind registers the chat frame handlers on p.
func (d *Dispatcher) Bind(p *realtime.Protocol) {
	p.Handle(realtime.FrameJoinConversation, func(ctx context.Context, conn realtime.Conn, data json.RawMessage) error {
		f, err := realtime.DecodeData[conversationFrame](data)
		if err != nil {
			return err
		}
		return d.JoinConversation(ctx, conn, f.ConversationID)
	})

	p.Handle(realtime.FrameLeaveConversation, func(_ context.Context, conn realtime.Conn, data json.RawMessage) error {
		f, err := realtime.DecodeData[conversationFrame](data)
		if err != nil {
			return err
		}
		d.LeaveConversation(conn, f.ConversationID)
		return nil
	})

	p.Handle(realtime.FrameSendMessage, func(ctx context.Context, conn realtime.Conn, data json.RawMessage) error {
		f, err := realtime.DecodeData[sendMessageFrame](data)
		if err != nil {
			return err
		}
		_, err = d.SendMessage(ctx, conn.Identity(), f.ConversationID, f.Body)
		return err
	})

	p.Handle(realtime.FrameMarkRead, func(ctx context.Context, conn realtime.Conn, data json.RawMessage) error {
		f, err := realtime.DecodeData[conversationFrame](data)
		if err != nil {
			return err
		}
		_, err = d.MarkConversationRead(ctx, conn.Identity(), f.ConversationID)
		return err
	})
}
