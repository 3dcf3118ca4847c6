package persistence

import (
	"context"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAuditRepository implements the audit Repository using GORM.
// The log is append-only; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores a new audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindAll lists entries matching the filter, newest first
func (r *GormAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.Entry{}), filter)
	query = applyListFilter(query, filter, "created_at DESC")

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts entries matching the filter
func (r *GormAuditRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.Entry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if action, ok := filter.Filters["action"]; ok {
		query = query.Where("action = ?", action)
	}
	if kind, ok := filter.Filters["entity_kind"]; ok {
		query = query.Where("entity_kind = ?", kind)
	}
	if entityID, ok := filter.Filters["entity_id"]; ok {
		query = query.Where("entity_id = ?", entityID)
	}
	if actorID, ok := filter.Filters["actor_id"]; ok {
		query = query.Where("actor_id = ?", actorID)
	}
	return query
}

var _ audit.Repository = (*GormAuditRepository)(nil)
