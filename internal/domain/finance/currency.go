package finance

import (
	"strings"

	"github.com/gestio/backend/internal/domain/shared"
)

// Currency represents a currency configured for the business.
// Payments, invoices and accounts reference currencies by ID; the ISO code
// is kept for display and cross-checking.
type Currency struct {
	shared.BaseAggregateRoot
	Code          string `gorm:"type:varchar(3);not null;uniqueIndex"`
	Name          string `gorm:"type:varchar(100);not null"`
	Symbol        string `gorm:"type:varchar(10)"`
	DecimalPlaces int    `gorm:"not null;default:2"`
	IsActive      bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// NewCurrency creates a new active currency
func NewCurrency(code, name, symbol string, decimalPlaces int) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be a 3-letter ISO code")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Currency name cannot be empty")
	}
	if decimalPlaces < 0 || decimalPlaces > 6 {
		return nil, shared.NewDomainError("INVALID_DECIMAL_PLACES", "Decimal places must be between 0 and 6")
	}
	return &Currency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Symbol:            symbol,
		DecimalPlaces:     decimalPlaces,
		IsActive:          true,
	}, nil
}

// Deactivate forbids use of the currency by new documents and payments.
// Existing rows keep their reference.
func (c *Currency) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Currency is already inactive")
	}
	c.IsActive = false
	return nil
}

// Activate re-enables the currency
func (c *Currency) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Currency is already active")
	}
	c.IsActive = true
	return nil
}

// UpdateInfo updates the currency's descriptive fields
func (c *Currency) UpdateInfo(name, symbol string, decimalPlaces int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Currency name cannot be empty")
	}
	if decimalPlaces < 0 || decimalPlaces > 6 {
		return shared.NewDomainError("INVALID_DECIMAL_PLACES", "Decimal places must be between 0 and 6")
	}
	c.Name = name
	c.Symbol = symbol
	c.DecimalPlaces = decimalPlaces
	return nil
}
