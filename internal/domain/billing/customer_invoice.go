package billing

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerInvoice is an invoice issued to a customer. Payments applied to it
// move AmountPaid and re-derive the status; the invoice application engine is
// the only writer of those fields.
type CustomerInvoice struct {
	shared.BaseAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate  time.Time       `gorm:"type:date;not null"`
	DueDate    *time.Time      `gorm:"type:date"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerInvoice) TableName() string {
	return "customer_invoices"
}

// NewCustomerInvoice creates a new unpaid customer invoice
func NewCustomerInvoice(number string, customerID, currencyID uuid.UUID, issueDate time.Time, total decimal.Decimal) (*CustomerInvoice, error) {
	if err := validateInvoiceInputs(number, customerID, currencyID, issueDate, total); err != nil {
		return nil, err
	}
	return &CustomerInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CurrencyID:        currencyID,
		IssueDate:         issueDate,
		Total:             total,
		AmountPaid:        decimal.Zero,
		Status:            InvoiceStatusUnpaid,
	}, nil
}

// AmountRemaining returns total - amountPaid. Negative values represent
// overpayment and are never clamped.
func (i *CustomerInvoice) AmountRemaining() decimal.Decimal {
	return i.Total.Sub(i.AmountPaid)
}

// CanAcceptPayment returns true if new payments may be linked to the invoice
func (i *CustomerInvoice) CanAcceptPayment() bool {
	return !i.Status.IsTerminal()
}

// ApplyPaymentDelta adds the signed amount to AmountPaid and re-derives the
// status. Negative deltas are how reversals restore the previous state.
func (i *CustomerInvoice) ApplyPaymentDelta(delta decimal.Decimal) {
	i.AmountPaid = i.AmountPaid.Add(delta)
	i.Status = DerivePaymentStatus(i.AmountPaid, i.Total)
}

// Void marks the invoice as voided. Voided invoices reject new payments.
func (i *CustomerInvoice) Void() error {
	if i.Status == InvoiceStatusVoided {
		return shared.NewDomainError("ALREADY_VOIDED", "Invoice is already voided")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled invoices cannot be voided")
	}
	i.Status = InvoiceStatusVoided
	return nil
}

// Cancel marks an unpaid invoice as cancelled
func (i *CustomerInvoice) Cancel() error {
	if i.Status != InvoiceStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Only unpaid invoices can be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	return nil
}

func validateInvoiceInputs(number string, partyID, currencyID uuid.UUID, issueDate time.Time, total decimal.Decimal) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if partyID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if currencyID == uuid.Nil {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	if issueDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Issue date is required")
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_TOTAL", "Invoice total must be positive")
	}
	return nil
}
