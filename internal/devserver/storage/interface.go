// File: internal/devserver/storage/interface.go
package storage

import "context"

// ConversationRepository handles conversation data operations.
type ConversationRepository interface {
	Create(ctx context.Context, rec *ConversationRecord) error
	FindByID(ctx context.Context, tenantID, id string) (*ConversationRecord, error)
	FindByTenantID(ctx context.Context, tenantID string) ([]ConversationRecord, error)
	Delete(ctx context.Context, tenantID, id string) error
	TouchUpdatedAt(ctx context.Context, id string) error
}

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, rec *MessageRecord) error
	FindByConversationID(ctx context.Context, conversationID string) ([]MessageRecord, error)
	CountByConversationID(ctx context.Context, conversationID string) (int64, error)
	DeleteByConversationID(ctx context.Context, conversationID string) error
}

// EventRepository handles the activity feed.
type EventRepository interface {
	Create(ctx context.Context, rec *EventRecord) error
	FindRecent(ctx context.Context, tenantID string, limit int) ([]EventRecord, error)
}
