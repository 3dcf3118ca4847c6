package finance

import (
	"context"
	"fmt"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/partner"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// CurrencySummary is the one-line view of a payment's currency
type CurrencySummary struct {
	ID   uuid.UUID
	Code string
	Name string
}

// PaymentMethodSummary is the one-line view of a payment's method
type PaymentMethodSummary struct {
	ID   uuid.UUID
	Code string
	Name string
}

// CounterpartySummary is the one-line view of the customer or supplier
type CounterpartySummary struct {
	Kind finance.CounterpartyKind
	ID   uuid.UUID
	Name string
}

// DocumentSummary is the one-line view of the settled invoice or order
type DocumentSummary struct {
	Kind   finance.DocumentRefKind
	ID     uuid.UUID
	Number string
}

// AccountSummary is the one-line view of the settling account. For cash
// sessions the name is the owning register's name.
type AccountSummary struct {
	Kind finance.AccountRefKind
	ID   uuid.UUID
	Name string
}

// PaymentDetails is a payment together with the resolved summaries of every
// entity it references. Record, reverse, and single-payment reads return this
// shape; list views stay flat.
type PaymentDetails struct {
	*finance.Payment
	Currency      CurrencySummary
	PaymentMethod PaymentMethodSummary
	Counterparty  *CounterpartySummary
	Document      *DocumentSummary
	Account       AccountSummary
}

// PaymentResolver loads the entities a stored payment references and builds
// their response summaries. The references were validated before the payment
// was persisted, so a miss here is an internal inconsistency, not client
// input: every failure maps to the INTERNAL error class.
type PaymentResolver struct {
	currencyRepo        finance.CurrencyRepository
	paymentMethodRepo   finance.PaymentMethodRepository
	customerRepo        partner.CustomerRepository
	supplierRepo        partner.SupplierRepository
	customerInvoiceRepo billing.CustomerInvoiceRepository
	supplierInvoiceRepo billing.SupplierInvoiceRepository
	salesOrderRepo      trade.SalesOrderRepository
	purchaseOrderRepo   trade.PurchaseOrderRepository
	bankAccountRepo     finance.BankAccountRepository
	cashSessionRepo     finance.CashRegisterSessionRepository
}

// NewPaymentResolver creates a new PaymentResolver
func NewPaymentResolver(
	currencyRepo finance.CurrencyRepository,
	paymentMethodRepo finance.PaymentMethodRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	customerInvoiceRepo billing.CustomerInvoiceRepository,
	supplierInvoiceRepo billing.SupplierInvoiceRepository,
	salesOrderRepo trade.SalesOrderRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	bankAccountRepo finance.BankAccountRepository,
	cashSessionRepo finance.CashRegisterSessionRepository,
) *PaymentResolver {
	return &PaymentResolver{
		currencyRepo:        currencyRepo,
		paymentMethodRepo:   paymentMethodRepo,
		customerRepo:        customerRepo,
		supplierRepo:        supplierRepo,
		customerInvoiceRepo: customerInvoiceRepo,
		supplierInvoiceRepo: supplierInvoiceRepo,
		salesOrderRepo:      salesOrderRepo,
		purchaseOrderRepo:   purchaseOrderRepo,
		bankAccountRepo:     bankAccountRepo,
		cashSessionRepo:     cashSessionRepo,
	}
}

// Resolve loads every entity the payment references and returns the payment
// with its resolved summaries.
func (r *PaymentResolver) Resolve(ctx context.Context, p *finance.Payment) (*PaymentDetails, error) {
	details := &PaymentDetails{Payment: p}

	currency, err := r.currencyRepo.FindByID(ctx, p.CurrencyID)
	if err != nil {
		return nil, assemblyFault(p.ID, "currency", err)
	}
	details.Currency = CurrencySummary{ID: currency.ID, Code: currency.Code, Name: currency.Name}

	method, err := r.paymentMethodRepo.FindByID(ctx, p.PaymentMethodID)
	if err != nil {
		return nil, assemblyFault(p.ID, "payment method", err)
	}
	details.PaymentMethod = PaymentMethodSummary{ID: method.ID, Code: method.Code, Name: method.Name}

	if err := r.resolveCounterparty(ctx, details); err != nil {
		return nil, err
	}
	if err := r.resolveDocument(ctx, details); err != nil {
		return nil, err
	}
	if err := r.resolveAccount(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *PaymentResolver) resolveCounterparty(ctx context.Context, details *PaymentDetails) error {
	ref := details.Payment.CounterpartyRef()
	if ref.IsZero() {
		return nil
	}
	summary := &CounterpartySummary{Kind: ref.Kind(), ID: ref.ID()}
	switch ref.Kind() {
	case finance.CounterpartyCustomer:
		customer, err := r.customerRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "customer", err)
		}
		summary.Name = customer.Name
	case finance.CounterpartySupplier:
		supplier, err := r.supplierRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "supplier", err)
		}
		summary.Name = supplier.Name
	}
	details.Counterparty = summary
	return nil
}

func (r *PaymentResolver) resolveDocument(ctx context.Context, details *PaymentDetails) error {
	ref := details.Payment.DocumentRef()
	if ref.IsZero() {
		return nil
	}
	summary := &DocumentSummary{Kind: ref.Kind(), ID: ref.ID()}
	switch ref.Kind() {
	case finance.DocumentRefCustomerInvoice:
		invoice, err := r.customerInvoiceRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "customer invoice", err)
		}
		summary.Number = invoice.Number
	case finance.DocumentRefSupplierInvoice:
		invoice, err := r.supplierInvoiceRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "supplier invoice", err)
		}
		summary.Number = invoice.Number
	case finance.DocumentRefSalesOrder:
		order, err := r.salesOrderRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "sales order", err)
		}
		summary.Number = order.Number
	case finance.DocumentRefPurchaseOrder:
		order, err := r.purchaseOrderRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "purchase order", err)
		}
		summary.Number = order.Number
	}
	details.Document = summary
	return nil
}

func (r *PaymentResolver) resolveAccount(ctx context.Context, details *PaymentDetails) error {
	ref := details.Payment.AccountRef()
	summary := AccountSummary{Kind: ref.Kind(), ID: ref.ID()}
	switch ref.Kind() {
	case finance.AccountRefBankAccount:
		account, err := r.bankAccountRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "bank account", err)
		}
		summary.Name = account.Name
	case finance.AccountRefCashSession:
		session, err := r.cashSessionRepo.FindByID(ctx, ref.ID())
		if err != nil {
			return assemblyFault(details.Payment.ID, "cash register session", err)
		}
		if session.Register == nil {
			return assemblyFault(details.Payment.ID, "cash register", shared.ErrNotFound)
		}
		summary.Name = session.Register.Name
	}
	details.Account = summary
	return nil
}

// assemblyFault wraps a lookup failure during response assembly. The chain
// ends in ErrInternal so the HTTP layer reports a server fault, never a
// client error, for a reference that validated before the write.
func assemblyFault(paymentID uuid.UUID, entity string, err error) error {
	return fmt.Errorf("payment %s response assembly: %s lookup failed: %v: %w",
		paymentID, entity, err, shared.ErrInternal)
}
