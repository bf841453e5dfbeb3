// File: internal/domain/conversation.go
package domain

import "time"

// ConversationID is the opaque identifier the backend assigns to a conversation.
type ConversationID string

// Conversation represents a single assistant conversation thread.
type Conversation struct {
	ID           ConversationID `json:"id"`
	Title        string         `json:"title"` // e.g., "CRM Dashboard - Sep 1, 2026"
	MessageCount int            `json:"messageCount"`
	CreatedAt    time.Time      `json:"createdAt"`
}
