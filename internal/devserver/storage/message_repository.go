// File: internal/devserver/storage/message_repository.go
package storage

import (
	"context"
	"errors"
	"log"

	"github.com/nexsuite/chatorb/internal/domain"
	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, rec *MessageRecord) error {
	if rec.ID == "" || rec.ConversationID == "" {
		return errors.New("message id and conversation id are required")
	}
	if !domain.Role(rec.Role).Valid() {
		return errors.New("unknown message role")
	}
	if rec.Content == "" {
		return errors.New("message content is required")
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message in conversation %s: %v", rec.ConversationID, err)
		return errors.New("database error creating message")
	}
	return nil
}

// FindByConversationID returns the full message set for a conversation in
// chronological order; the client replaces its displayed set with this
// wholesale.
func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID string) ([]MessageRecord, error) {
	if conversationID == "" {
		return nil, errors.New("invalid conversation id")
	}

	var recs []MessageRecord
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for conversation %s: %v", conversationID, err)
		return nil, errors.New("database error fetching messages")
	}
	return recs, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	if conversationID == "" {
		return 0, errors.New("invalid conversation id")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&MessageRecord{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for conversation %s: %v", conversationID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

func (r *gormMessageRepository) DeleteByConversationID(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return errors.New("invalid conversation id")
	}

	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&MessageRecord{}).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error deleting messages for conversation %s: %v", conversationID, err)
		return errors.New("database error deleting messages")
	}
	return nil
}
