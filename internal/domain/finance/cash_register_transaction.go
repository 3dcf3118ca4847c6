package finance

import (
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashTransactionKind classifies a cash register movement
type CashTransactionKind string

const (
	CashTransactionKindPaymentIn  CashTransactionKind = "PAYMENT_IN"
	CashTransactionKindPaymentOut CashTransactionKind = "PAYMENT_OUT"
	CashTransactionKindReversal   CashTransactionKind = "REVERSAL"
)

// IsValid checks if the kind is a valid CashTransactionKind
func (k CashTransactionKind) IsValid() bool {
	switch k {
	case CashTransactionKindPaymentIn, CashTransactionKindPaymentOut, CashTransactionKindReversal:
		return true
	}
	return false
}

// CashRegisterTransaction is an append-only movement in a register's ledger.
// Entries are never modified or deleted; reversals create inverse entries,
// keeping the ledger history reconcilable with the running balance.
type CashRegisterTransaction struct {
	shared.BaseEntity
	SessionID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	RegisterID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	PaymentID    *uuid.UUID          `gorm:"type:uuid;index"`
	Kind         CashTransactionKind `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	BalanceAfter decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Description  string              `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (CashRegisterTransaction) TableName() string {
	return "cash_register_transactions"
}

// NewCashRegisterTransaction creates a new register ledger entry
func NewCashRegisterTransaction(
	sessionID, registerID uuid.UUID,
	paymentID *uuid.UUID,
	kind CashTransactionKind,
	amount, balanceAfter decimal.Decimal,
	description string,
) (*CashRegisterTransaction, error) {
	if sessionID == uuid.Nil || registerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Session and register IDs are required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Cash transaction kind is not valid")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cash transaction amount cannot be zero")
	}
	return &CashRegisterTransaction{
		BaseEntity:   shared.NewBaseEntity(),
		SessionID:    sessionID,
		RegisterID:   registerID,
		PaymentID:    paymentID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
	}, nil
}
