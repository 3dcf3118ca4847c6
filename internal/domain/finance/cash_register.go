package finance

import (
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashRegister represents a physical cash register (till).
// The register owns the running balance; sessions are working periods that
// route payments into it.
type CashRegister struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive   bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CashRegister) TableName() string {
	return "cash_registers"
}

// NewCashRegister creates a new cash register
func NewCashRegister(name string, currencyID uuid.UUID) (*CashRegister, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Cash register name cannot be empty")
	}
	if currencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	return &CashRegister{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CurrencyID:        currencyID,
		Balance:           decimal.Zero,
		IsActive:          true,
	}, nil
}

// Deactivate takes the register out of service. A register with an open
// session cannot be deactivated; the application layer enforces that.
func (r *CashRegister) Deactivate() error {
	if !r.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Cash register is already inactive")
	}
	r.IsActive = false
	return nil
}

// Activate puts the register back in service
func (r *CashRegister) Activate() error {
	if r.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Cash register is already active")
	}
	r.IsActive = true
	return nil
}
