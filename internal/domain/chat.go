package domain

import "time"

// Conversation is a customer to restaurant-owner chat thread.
type Conversation struct {
	ID             int64
	CustomerID     int64
	OwnerID        int64
	RestaurantID   int64
	LastMessage    string
	LastSenderRole Role
	LastMessageAt  *time.Time
	CustomerUnread int
	OwnerUnread    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Participant reports whether id takes part in the conversation.
func (c *Conversation) Participant(id Identity) bool {
	switch id.Role {
	case RoleCustomer:
		return id.ID == c.CustomerID
	case RoleOwner:
		return id.ID == c.OwnerID
	default:
		return false
	}
}

// Counterpart returns the other side of the conversation for a participant.
func (c *Conversation) Counterpart(id Identity) (Identity, bool) {
	if !c.Participant(id) {
		return Identity{}, false
	}
	if id.Role == RoleCustomer {
		return Identity{Role: RoleOwner, ID: c.OwnerID}, true
	}
	return Identity{Role: RoleCustomer, ID: c.CustomerID}, true
}

// ChatMessage is an immutable chat line; only Read may change.
type ChatMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderRole     Role      `json:"sender_role"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationPreview is the denormalized summary written after each message.
type ConversationPreview struct {
	ConversationID int64
	Body           string
	SenderRole     Role
	At             time.Time
	// UnreadFor is the side whose unread counter is incremented.
	UnreadFor Role
}
