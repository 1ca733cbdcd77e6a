package domain

// OutboundChannel selects the email/SMS relay channel.
type OutboundChannel string

// Supported relay channels.
const (
	ChannelEmail OutboundChannel = "email"
	ChannelSMS   OutboundChannel = "sms"
)

// OutboundMessage is an email or SMS for one user. The relay resolves the
// address of the recipient.
type OutboundMessage struct {
	Channel   OutboundChannel `json:"channel"`
	Recipient Identity        `json:"recipient"`
	Subject   string          `json:"subject,omitempty"`
	Body      string          `json:"body"`
}
