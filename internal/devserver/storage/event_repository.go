// File: internal/devserver/storage/event_repository.go
package storage

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
)

type gormEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) Create(ctx context.Context, rec *EventRecord) error {
	if rec.ID == "" || rec.TenantID == "" || rec.Description == "" {
		return errors.New("event id, tenant id and description are required")
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Printf("[EventRepository] Database error creating event for tenant %s: %v", rec.TenantID, err)
		return errors.New("database error creating event")
	}
	return nil
}

func (r *gormEventRepository) FindRecent(ctx context.Context, tenantID string, limit int) ([]EventRecord, error) {
	if tenantID == "" {
		return nil, errors.New("invalid tenant id")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var recs []EventRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		log.Printf("[EventRepository] Database error finding events for tenant %s: %v", tenantID, err)
		return nil, errors.New("database error fetching events")
	}
	return recs, nil
}
