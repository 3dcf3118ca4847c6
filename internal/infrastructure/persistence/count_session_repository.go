package persistence

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/inventory"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCountSessionRepository implements CountSessionRepository using GORM
type GormCountSessionRepository struct {
	db *gorm.DB
}

// NewGormCountSessionRepository creates a new GormCountSessionRepository
func NewGormCountSessionRepository(db *gorm.DB) *GormCountSessionRepository {
	return &GormCountSessionRepository{db: db}
}

// FindByID finds a count session by ID with its lines preloaded
func (r *GormCountSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	var session inventory.CountSession
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindAll finds count sessions matching the filter; lines are not loaded
func (r *GormCountSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.CountSession, error) {
	var sessions []inventory.CountSession
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.CountSession{}), filter)
	query = applyListFilter(query, filter, "count_date DESC, number DESC")

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a count session together with its lines
func (r *GormCountSessionRepository) Save(ctx context.Context, session *inventory.CountSession) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(session).Error
}

// Count counts sessions matching the filter
func (r *GormCountSessionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.CountSession{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCountSessionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

var _ inventory.CountSessionRepository = (*GormCountSessionRepository)(nil)
