package billing

import "github.com/shopspring/decimal"

// InvoiceStatus represents the payment lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusVoided        InvoiceStatus = "VOIDED"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusVoided, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true when the invoice no longer accepts new payments
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoided || s == InvoiceStatusCancelled
}

// DerivePaymentStatus computes the payment status as a pure function of the
// paid amount. Because it is pure, applying a delta and then its negation
// restores the previous status exactly, which is what makes payment reversal
// deterministic. Overpayment (amountPaid > total) maps to PAID and negative
// remainders stay representable.
func DerivePaymentStatus(amountPaid, total decimal.Decimal) InvoiceStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return InvoiceStatusUnpaid
	case amountPaid.LessThan(total):
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusPaid
	}
}
