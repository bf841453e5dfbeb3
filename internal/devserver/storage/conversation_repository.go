// File: internal/devserver/storage/conversation_repository.go
package storage

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) Create(ctx context.Context, rec *ConversationRecord) error {
	if rec.ID == "" || rec.TenantID == "" {
		return errors.New("conversation id and tenant id are required")
	}
	if strings.TrimSpace(rec.Title) == "" {
		return errors.New("conversation title is required")
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Printf("[ConversationRepository] Database error creating conversation for tenant %s: %v", rec.TenantID, err)
		return errors.New("database error creating conversation")
	}
	return nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, tenantID, id string) (*ConversationRecord, error) {
	if tenantID == "" || id == "" {
		return nil, errors.New("invalid tenant id or conversation id")
	}

	var rec ConversationRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Printf("[ConversationRepository] Database error finding conversation %s: %v", id, err)
		return nil, errors.New("database error fetching conversation")
	}
	return &rec, nil
}

// FindByTenantID returns the tenant's conversations, most recently touched
// first. This ordering is part of the contract the client's auto-selection
// depends on.
func (r *gormConversationRepository) FindByTenantID(ctx context.Context, tenantID string) ([]ConversationRecord, error) {
	if tenantID == "" {
		return nil, errors.New("invalid tenant id")
	}

	var recs []ConversationRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("updated_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		log.Printf("[ConversationRepository] Database error finding conversations for tenant %s: %v", tenantID, err)
		return nil, errors.New("database error fetching conversations")
	}
	return recs, nil
}

func (r *gormConversationRepository) Delete(ctx context.Context, tenantID, id string) error {
	if tenantID == "" || id == "" {
		return errors.New("invalid tenant id or conversation id")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&ConversationRecord{})
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error deleting conversation %s: %v", id, result.Error)
		return errors.New("database error deleting conversation")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (r *gormConversationRepository) TouchUpdatedAt(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid conversation id")
	}

	result := r.db.WithContext(ctx).
		Model(&ConversationRecord{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error touching conversation %s: %v", id, result.Error)
		return errors.New("database error updating conversation timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}
