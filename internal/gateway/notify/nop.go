package notify

import (
	"context"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// Nop drops outbound messages. It is used when no relay is configured.
type Nop struct {
	Logger logx.Logger
}

// Send logs msg at debug level and returns nil.
func (n Nop) Send(_ context.Context, msg domain.OutboundMessage) error {
	if n.Logger != nil {
		n.Logger.Debug("outbound message dropped",
			logx.String("channel", string(msg.Channel)),
			logx.Identity("recipient", msg.Recipient),
		)
	}
	return nil
}
