package billing

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierInvoice is an invoice received from a supplier. It mirrors the
// customer invoice payment lifecycle on the payable side.
type SupplierInvoice struct {
	shared.BaseAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate  time.Time       `gorm:"type:date;not null"`
	DueDate    *time.Time      `gorm:"type:date"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// NewSupplierInvoice creates a new unpaid supplier invoice
func NewSupplierInvoice(number string, supplierID, currencyID uuid.UUID, issueDate time.Time, total decimal.Decimal) (*SupplierInvoice, error) {
	if err := validateInvoiceInputs(number, supplierID, currencyID, issueDate, total); err != nil {
		return nil, err
	}
	return &SupplierInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SupplierID:        supplierID,
		CurrencyID:        currencyID,
		IssueDate:         issueDate,
		Total:             total,
		AmountPaid:        decimal.Zero,
		Status:            InvoiceStatusUnpaid,
	}, nil
}

// AmountRemaining returns total - amountPaid without clamping
func (i *SupplierInvoice) AmountRemaining() decimal.Decimal {
	return i.Total.Sub(i.AmountPaid)
}

// CanAcceptPayment returns true if new payments may be linked to the invoice
func (i *SupplierInvoice) CanAcceptPayment() bool {
	return !i.Status.IsTerminal()
}

// ApplyPaymentDelta adds the signed amount to AmountPaid and re-derives the
// status. Negative deltas are how reversals restore the previous state.
func (i *SupplierInvoice) ApplyPaymentDelta(delta decimal.Decimal) {
	i.AmountPaid = i.AmountPaid.Add(delta)
	i.Status = DerivePaymentStatus(i.AmountPaid, i.Total)
}

// Void marks the invoice as voided
func (i *SupplierInvoice) Void() error {
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
func (i *SupplierInvoice) Cancel() error {
	if i.Status != InvoiceStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Only unpaid invoices can be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	return nil
}
