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

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var account finance.BankAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll finds all bank accounts matching the filter
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.BankAccount, error) {
	var accounts []finance.BankAccount
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.BankAccount{}), filter)
	query = applyListFilter(query, filter, "name ASC")

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Count counts bank accounts matching the filter
func (r *GormBankAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.BankAccount{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyBalanceDelta atomically increments the account balance by delta and
// returns the post-delta balance. A single UPDATE ... RETURNING keeps
// concurrent deltas serialized on the row.
func (r *GormBankAccountRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	result := r.db.WithContext(ctx).Raw(
		"UPDATE bank_accounts SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? RETURNING balance",
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

func (r *GormBankAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR account_number ILIKE ?", pattern, pattern)
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if currencyID, ok := filter.Filters["currency_id"]; ok {
		query = query.Where("currency_id = ?", currencyID)
	}
	return query
}

var _ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
