// File: internal/domain/message.go
package domain

import "time"

// Role identifies the author of a message. It is a closed set: every message
// is either user-authored or assistant-generated.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message represents a single turn within a conversation.
type Message struct {
	ID             string         `json:"id"`
	ConversationID ConversationID `json:"conversationId"`
	Role           Role           `json:"role"`
	Content        string         `json:"content"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// MessageContext is the context bundle attached to an outgoing user message:
// where the user was in the platform, what they did recently, and when.
type MessageContext struct {
	Page         string    `json:"page"`
	RecentEvents []string  `json:"recentEvents,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
