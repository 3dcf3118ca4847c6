package finance

import (
	"fmt"
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDirection indicates whether money was received or paid out
type PaymentDirection string

const (
	PaymentDirectionInbound  PaymentDirection = "INBOUND"
	PaymentDirectionOutbound PaymentDirection = "OUTBOUND"
)

// IsValid checks if the direction is a valid PaymentDirection
func (d PaymentDirection) IsValid() bool {
	return d == PaymentDirectionInbound || d == PaymentDirectionOutbound
}

// AccountRefKind discriminates the financial account a payment settles against
type AccountRefKind string

const (
	AccountRefBankAccount AccountRefKind = "BANK_ACCOUNT"
	AccountRefCashSession AccountRefKind = "CASH_SESSION"
)

// AccountRef is a closed union: exactly one of a bank account or a cash
// register session. The zero value is invalid; construction goes through
// BankAccountRef or CashSessionRef, so "exactly one account reference" holds
// by type, not by runtime checks.
type AccountRef struct {
	kind AccountRefKind
	id   uuid.UUID
}

// BankAccountRef creates an account reference to a bank account
func BankAccountRef(id uuid.UUID) AccountRef {
	return AccountRef{kind: AccountRefBankAccount, id: id}
}

// CashSessionRef creates an account reference to a cash register session
func CashSessionRef(id uuid.UUID) AccountRef {
	return AccountRef{kind: AccountRefCashSession, id: id}
}

// Kind returns the account kind
func (r AccountRef) Kind() AccountRefKind { return r.kind }

// ID returns the referenced account's ID
func (r AccountRef) ID() uuid.UUID { return r.id }

// IsZero reports whether the reference was never constructed
func (r AccountRef) IsZero() bool { return r.kind == "" || r.id == uuid.Nil }

// DocumentRefKind discriminates the document a payment settles
type DocumentRefKind string

const (
	DocumentRefCustomerInvoice DocumentRefKind = "CUSTOMER_INVOICE"
	DocumentRefSupplierInvoice DocumentRefKind = "SUPPLIER_INVOICE"
	DocumentRefSalesOrder      DocumentRefKind = "SALES_ORDER"
	DocumentRefPurchaseOrder   DocumentRefKind = "PURCHASE_ORDER"
)

// DocumentRef is a closed union over the settleable document kinds.
// The zero value means "no document linked" and is legal.
type DocumentRef struct {
	kind DocumentRefKind
	id   uuid.UUID
}

// CustomerInvoiceRef links a payment to a customer invoice
func CustomerInvoiceRef(id uuid.UUID) DocumentRef {
	return DocumentRef{kind: DocumentRefCustomerInvoice, id: id}
}

// SupplierInvoiceRef links a payment to a supplier invoice
func SupplierInvoiceRef(id uuid.UUID) DocumentRef {
	return DocumentRef{kind: DocumentRefSupplierInvoice, id: id}
}

// SalesOrderRef links a payment to a sales order
func SalesOrderRef(id uuid.UUID) DocumentRef {
	return DocumentRef{kind: DocumentRefSalesOrder, id: id}
}

// PurchaseOrderRef links a payment to a purchase order
func PurchaseOrderRef(id uuid.UUID) DocumentRef {
	return DocumentRef{kind: DocumentRefPurchaseOrder, id: id}
}

// Kind returns the document kind
func (r DocumentRef) Kind() DocumentRefKind { return r.kind }

// ID returns the referenced document's ID
func (r DocumentRef) ID() uuid.UUID { return r.id }

// IsZero reports whether no document is linked
func (r DocumentRef) IsZero() bool { return r.kind == "" || r.id == uuid.Nil }

// IsInvoice reports whether the document carries a paid-amount balance
func (r DocumentRef) IsInvoice() bool {
	return r.kind == DocumentRefCustomerInvoice || r.kind == DocumentRefSupplierInvoice
}

// IsCustomerSide reports whether the document belongs to the customer family
func (r DocumentRef) IsCustomerSide() bool {
	return r.kind == DocumentRefCustomerInvoice || r.kind == DocumentRefSalesOrder
}

// IsSupplierSide reports whether the document belongs to the supplier family
func (r DocumentRef) IsSupplierSide() bool {
	return r.kind == DocumentRefSupplierInvoice || r.kind == DocumentRefPurchaseOrder
}

// CounterpartyKind discriminates the party a payment is exchanged with
type CounterpartyKind string

const (
	CounterpartyCustomer CounterpartyKind = "CUSTOMER"
	CounterpartySupplier CounterpartyKind = "SUPPLIER"
)

// CounterpartyRef is a closed union over the party kinds.
// The zero value means "no counterparty" and is legal.
type CounterpartyRef struct {
	kind CounterpartyKind
	id   uuid.UUID
}

// CustomerRef links a payment to a customer
func CustomerRef(id uuid.UUID) CounterpartyRef {
	return CounterpartyRef{kind: CounterpartyCustomer, id: id}
}

// SupplierRef links a payment to a supplier
func SupplierRef(id uuid.UUID) CounterpartyRef {
	return CounterpartyRef{kind: CounterpartySupplier, id: id}
}

// Kind returns the counterparty kind
func (r CounterpartyRef) Kind() CounterpartyKind { return r.kind }

// ID returns the referenced party's ID
func (r CounterpartyRef) ID() uuid.UUID { return r.id }

// IsZero reports whether no counterparty is linked
func (r CounterpartyRef) IsZero() bool { return r.kind == "" || r.id == uuid.Nil }

// Payment is an immutable record of one money movement.
// Core financial fields are never edited after creation; correcting a
// mistake means reversing and re-recording. Reversal tombstones the row
// (ReversedAt) instead of deleting it.
//
// The union references are flattened into nullable FK columns for storage
// and reconstructed through the accessor methods.
type Payment struct {
	shared.BaseAggregateRoot
	Date            time.Time        `gorm:"type:date;not null;index"`
	Amount          decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	CurrencyID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Direction       PaymentDirection `gorm:"type:varchar(10);not null;index"`

	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index"`

	CustomerInvoiceID *uuid.UUID `gorm:"type:uuid;index"`
	SupplierInvoiceID *uuid.UUID `gorm:"type:uuid;index"`
	SalesOrderID      *uuid.UUID `gorm:"type:uuid;index"`
	PurchaseOrderID   *uuid.UUID `gorm:"type:uuid;index"`

	BankAccountID         *uuid.UUID `gorm:"type:uuid;index"`
	CashRegisterSessionID *uuid.UUID `gorm:"type:uuid;index"`

	ReferenceNumber  string     `gorm:"type:varchar(100)"`
	Notes            string     `gorm:"type:text"`
	RecordedByUserID uuid.UUID  `gorm:"type:uuid;not null"`
	ReversedAt       *time.Time `gorm:"index"`
	ReversedByUserID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new live payment. Structural invariants are enforced
// here; referential checks (existence, activity, currency match, session
// openness) belong to the reference validator.
func NewPayment(
	date time.Time,
	amount decimal.Decimal,
	currencyID, paymentMethodID uuid.UUID,
	direction PaymentDirection,
	counterparty CounterpartyRef,
	document DocumentRef,
	account AccountRef,
	referenceNumber, notes string,
	recordedBy uuid.UUID,
) (*Payment, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if currencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency ID is required")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method ID is required")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Payment direction is not valid")
	}
	if account.IsZero() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Exactly one account reference is required")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recording user ID is required")
	}
	if err := checkDirectionConsistency(direction, counterparty, document); err != nil {
		return nil, err
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Amount:            amount,
		CurrencyID:        currencyID,
		PaymentMethodID:   paymentMethodID,
		Direction:         direction,
		ReferenceNumber:   referenceNumber,
		Notes:             notes,
		RecordedByUserID:  recordedBy,
	}
	p.setCounterparty(counterparty)
	p.setDocument(document)
	p.setAccount(account)
	return p, nil
}

// checkDirectionConsistency rejects supplier-side links on inbound payments
// and customer-side links on outbound payments.
func checkDirectionConsistency(direction PaymentDirection, counterparty CounterpartyRef, document DocumentRef) error {
	switch direction {
	case PaymentDirectionInbound:
		if !counterparty.IsZero() && counterparty.Kind() != CounterpartyCustomer {
			return shared.NewDomainError("DIRECTION_MISMATCH", "Inbound payments can only reference a customer")
		}
		if !document.IsZero() && !document.IsCustomerSide() {
			return shared.NewDomainError("DIRECTION_MISMATCH", "Inbound payments can only settle customer-side documents")
		}
	case PaymentDirectionOutbound:
		if !counterparty.IsZero() && counterparty.Kind() != CounterpartySupplier {
			return shared.NewDomainError("DIRECTION_MISMATCH", "Outbound payments can only reference a supplier")
		}
		if !document.IsZero() && !document.IsSupplierSide() {
			return shared.NewDomainError("DIRECTION_MISMATCH", "Outbound payments can only settle supplier-side documents")
		}
	}
	return nil
}

func (p *Payment) setCounterparty(ref CounterpartyRef) {
	if ref.IsZero() {
		return
	}
	id := ref.ID()
	switch ref.Kind() {
	case CounterpartyCustomer:
		p.CustomerID = &id
	case CounterpartySupplier:
		p.SupplierID = &id
	}
}

func (p *Payment) setDocument(ref DocumentRef) {
	if ref.IsZero() {
		return
	}
	id := ref.ID()
	switch ref.Kind() {
	case DocumentRefCustomerInvoice:
		p.CustomerInvoiceID = &id
	case DocumentRefSupplierInvoice:
		p.SupplierInvoiceID = &id
	case DocumentRefSalesOrder:
		p.SalesOrderID = &id
	case DocumentRefPurchaseOrder:
		p.PurchaseOrderID = &id
	}
}

func (p *Payment) setAccount(ref AccountRef) {
	id := ref.ID()
	switch ref.Kind() {
	case AccountRefBankAccount:
		p.BankAccountID = &id
	case AccountRefCashSession:
		p.CashRegisterSessionID = &id
	}
}

// AccountRef reconstructs the account union from the stored columns
func (p *Payment) AccountRef() AccountRef {
	if p.BankAccountID != nil {
		return BankAccountRef(*p.BankAccountID)
	}
	if p.CashRegisterSessionID != nil {
		return CashSessionRef(*p.CashRegisterSessionID)
	}
	return AccountRef{}
}

// DocumentRef reconstructs the document union from the stored columns
func (p *Payment) DocumentRef() DocumentRef {
	switch {
	case p.CustomerInvoiceID != nil:
		return CustomerInvoiceRef(*p.CustomerInvoiceID)
	case p.SupplierInvoiceID != nil:
		return SupplierInvoiceRef(*p.SupplierInvoiceID)
	case p.SalesOrderID != nil:
		return SalesOrderRef(*p.SalesOrderID)
	case p.PurchaseOrderID != nil:
		return PurchaseOrderRef(*p.PurchaseOrderID)
	}
	return DocumentRef{}
}

// CounterpartyRef reconstructs the counterparty union from the stored columns
func (p *Payment) CounterpartyRef() CounterpartyRef {
	if p.CustomerID != nil {
		return CustomerRef(*p.CustomerID)
	}
	if p.SupplierID != nil {
		return SupplierRef(*p.SupplierID)
	}
	return CounterpartyRef{}
}

// SignedAccountDelta returns the delta this payment applies to its account:
// +amount for inbound, -amount for outbound.
func (p *Payment) SignedAccountDelta() decimal.Decimal {
	if p.Direction == PaymentDirectionOutbound {
		return p.Amount.Neg()
	}
	return p.Amount
}

// IsReversed reports whether the payment has been tombstoned
func (p *Payment) IsReversed() bool {
	return p.ReversedAt != nil
}

// MarkReversed tombstones the payment and appends the reversal annotation to
// its notes. The row itself is retained for history.
func (p *Payment) MarkReversed(actorID uuid.UUID, at time.Time) error {
	if p.IsReversed() {
		return shared.NewDomainError("ALREADY_REVERSED", "Payment has already been reversed")
	}
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Acting user ID is required")
	}
	p.ReversedAt = &at
	p.ReversedByUserID = &actorID
	annotation := fmt.Sprintf("[reversed by %s at %s]", actorID, at.Format(time.RFC3339))
	if p.Notes == "" {
		p.Notes = annotation
	} else {
		p.Notes = p.Notes + "\n" + annotation
	}
	return nil
}
