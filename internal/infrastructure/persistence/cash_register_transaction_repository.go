package persistence

import (
	"context"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashRegisterTransactionRepository implements CashRegisterTransactionRepository
// using GORM. Ledger entries are append-only.
type GormCashRegisterTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterTransactionRepository creates a new GormCashRegisterTransactionRepository
func NewGormCashRegisterTransactionRepository(db *gorm.DB) *GormCashRegisterTransactionRepository {
	return &GormCashRegisterTransactionRepository{db: db}
}

// Append stores a new ledger entry
func (r *GormCashRegisterTransactionRepository) Append(ctx context.Context, tx *finance.CashRegisterTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindBySession lists the ledger entries of a session, oldest first so the
// running balance column reads in order
func (r *GormCashRegisterTransactionRepository) FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterTransaction, error) {
	var transactions []finance.CashRegisterTransaction
	query := r.db.WithContext(ctx).
		Model(&finance.CashRegisterTransaction{}).
		Where("session_id = ?", sessionID)
	query = applyListFilter(query, filter, "created_at ASC")

	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ finance.CashRegisterTransactionRepository = (*GormCashRegisterTransactionRepository)(nil)
