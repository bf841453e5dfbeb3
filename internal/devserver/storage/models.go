// File: internal/devserver/storage/models.go
package storage

import (
	"time"

	"github.com/nexsuite/chatorb/internal/domain"
)

// ConversationRecord is the stored form of a conversation, scoped to a tenant.
type ConversationRecord struct {
	ID        string `gorm:"primarykey"`
	TenantID  string `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ConversationRecord) TableName() string { return "conversations" }

// MessageRecord is a single stored turn within a conversation.
type MessageRecord struct {
	ID             string `gorm:"primarykey"`
	ConversationID string `gorm:"not null;index"`
	Role           string `gorm:"not null"` // "user" or "assistant"
	Content        string `gorm:"not null"`
	ContextJSON    string // serialized context bundle from the client
	CreatedAt      time.Time
}

func (MessageRecord) TableName() string { return "messages" }

// EventRecord is one entry of the platform activity feed.
type EventRecord struct {
	ID          string `gorm:"primarykey"`
	TenantID    string `gorm:"not null;index"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
}

func (EventRecord) TableName() string { return "event_logs" }

// ToDomain converts a stored conversation with its message count to the wire
// shape the client consumes.
func (r ConversationRecord) ToDomain(messageCount int) domain.Conversation {
	return domain.Conversation{
		ID:           domain.ConversationID(r.ID),
		Title:        r.Title,
		MessageCount: messageCount,
		CreatedAt:    r.CreatedAt,
	}
}

func (r MessageRecord) ToDomain() domain.Message {
	return domain.Message{
		ID:             r.ID,
		ConversationID: domain.ConversationID(r.ConversationID),
		Role:           domain.Role(r.Role),
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
	}
}

func (r EventRecord) ToDomain() domain.Event {
	return domain.Event{
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
