// Package repository persists audit log entries.
package repository

import (
	"context"

	auditdomain "github.com/anish-1308/ibilling/internal/audit/domain"
	"gorm.io/gorm"
)

const defaultLimit = 50

type gormRepository struct{}

// Provide returns the gorm-backed audit repository.
func Provide() auditdomain.Repository {
	return gormRepository{}
}

func (gormRepository) Insert(ctx context.Context, db *gorm.DB, entry *auditdomain.AuditLog) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (gormRepository) List(ctx context.Context, db *gorm.DB, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	query := db.WithContext(ctx).Model(&auditdomain.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.ActorType != "" {
		query = query.Where("actor_type = ?", filter.ActorType)
	}
	if filter.StartAt != nil {
		query = query.Where("created_at >= ?", *filter.StartAt)
	}
	if filter.EndAt != nil {
		query = query.Where("created_at <= ?", *filter.EndAt)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var entries []*auditdomain.AuditLog
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
