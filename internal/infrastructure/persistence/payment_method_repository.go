package persistence

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by ID regardless of its active flag
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	var method finance.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindActiveByID finds a payment method that is still active
func (r *GormPaymentMethodRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	var method finance.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindAll finds all payment methods matching the filter
func (r *GormPaymentMethodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.PaymentMethod, error) {
	var methods []finance.PaymentMethod
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.PaymentMethod{}), filter)
	query = applyListFilter(query, filter, "name ASC")

	if err := query.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *finance.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Count counts payment methods matching the filter
func (r *GormPaymentMethodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.PaymentMethod{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentMethodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

var _ finance.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
