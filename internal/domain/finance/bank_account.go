package finance

import (
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount represents a bank account owned by the business.
// Its balance is only ever mutated through signed deltas applied inside
// the caller's transaction; see the account ledger.
type BankAccount struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	AccountNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CurrencyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// NewBankAccount creates a new bank account with an opening balance
func NewBankAccount(name, accountNumber string, currencyID uuid.UUID, openingBalance decimal.Decimal) (*BankAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bank account name cannot be empty")
	}
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if currencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	return &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		AccountNumber:     accountNumber,
		CurrencyID:        currencyID,
		Balance:           openingBalance,
		IsActive:          true,
	}, nil
}

// Deactivate forbids use of the account by new payments
func (a *BankAccount) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Bank account is already inactive")
	}
	a.IsActive = false
	return nil
}

// Activate re-enables the bank account
func (a *BankAccount) Activate() error {
	if a.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Bank account is already active")
	}
	a.IsActive = true
	return nil
}
