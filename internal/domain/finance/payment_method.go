package finance

import (
	"strings"

	"github.com/gestio/backend/internal/domain/shared"
)

// PaymentMethodKind classifies how a payment method settles
type PaymentMethodKind string

const (
	PaymentMethodKindCash     PaymentMethodKind = "CASH"
	PaymentMethodKindTransfer PaymentMethodKind = "TRANSFER"
	PaymentMethodKindCard     PaymentMethodKind = "CARD"
	PaymentMethodKindCheck    PaymentMethodKind = "CHECK"
	PaymentMethodKindOther    PaymentMethodKind = "OTHER"
)

// IsValid checks if the kind is a valid PaymentMethodKind
func (k PaymentMethodKind) IsValid() bool {
	switch k {
	case PaymentMethodKindCash, PaymentMethodKindTransfer, PaymentMethodKindCard,
		PaymentMethodKindCheck, PaymentMethodKindOther:
		return true
	}
	return false
}

// PaymentMethod represents a way of paying or collecting money
type PaymentMethod struct {
	shared.BaseAggregateRoot
	Code     string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string            `gorm:"type:varchar(100);not null"`
	Kind     PaymentMethodKind `gorm:"type:varchar(20);not null;default:'OTHER'"`
	IsActive bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new active payment method
func NewPaymentMethod(code, name string, kind PaymentMethodKind) (*PaymentMethod, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Payment method code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment method name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Payment method kind is not valid")
	}
	return &PaymentMethod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Kind:              kind,
		IsActive:          true,
	}, nil
}

// Deactivate forbids use of the method by new payments
func (m *PaymentMethod) Deactivate() error {
	if !m.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Payment method is already inactive")
	}
	m.IsActive = false
	return nil
}

// Activate re-enables the payment method
func (m *PaymentMethod) Activate() error {
	if m.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Payment method is already active")
	}
	m.IsActive = true
	return nil
}
