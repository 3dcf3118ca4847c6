package persistence

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashRegisterRepository implements CashRegisterRepository using GORM
type GormCashRegisterRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterRepository creates a new GormCashRegisterRepository
func NewGormCashRegisterRepository(db *gorm.DB) *GormCashRegisterRepository {
	return &GormCashRegisterRepository{db: db}
}

// FindByID finds a cash register by its ID
func (r *GormCashRegisterRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashRegister, error) {
	var register finance.CashRegister
	if err := r.db.WithContext(ctx).First(&register, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &register, nil
}

// FindAll finds all cash registers matching the filter
func (r *GormCashRegisterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CashRegister, error) {
	var registers []finance.CashRegister
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.CashRegister{}), filter)
	query = applyListFilter(query, filter, "name ASC")

	if err := query.Find(&registers).Error; err != nil {
		return nil, err
	}
	return registers, nil
}

// Save creates or updates a cash register
func (r *GormCashRegisterRepository) Save(ctx context.Context, register *finance.CashRegister) error {
	return r.db.WithContext(ctx).Save(register).Error
}

// Count counts cash registers matching the filter
func (r *GormCashRegisterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.CashRegister{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyBalanceDelta atomically increments the register balance by delta and
// returns the post-delta balance
func (r *GormCashRegisterRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	result := r.db.WithContext(ctx).Raw(
		"UPDATE cash_registers SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? RETURNING balance",
		delta, id,
	).Scan(&balance)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, shared.ErrNotFound
	}
	return balance, nil
}

func (r *GormCashRegisterRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

var _ finance.CashRegisterRepository = (*GormCashRegisterRepository)(nil)
