package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/partner"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/domain/shared/valueobject"
	"github.com/gestio/backend/internal/domain/trade"
)

// ReferenceValidator confirms every entity a candidate payment points to
// exists, is active, and is mutually consistent. It is pure read-and-check:
// no side effects, and each call returns its own result value.
type ReferenceValidator struct {
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

// NewReferenceValidator creates a new ReferenceValidator
func NewReferenceValidator(
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
) *ReferenceValidator {
	return &ReferenceValidator{
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

// Validate checks every reference of the candidate payment and accumulates
// all violations in one pass. A non-nil error reports a storage failure, not
// a validation outcome.
func (v *ReferenceValidator) Validate(ctx context.Context, p *finance.Payment) (finance.ValidationResult, error) {
	var result finance.ValidationResult

	currency, err := v.checkCurrency(ctx, &result, p)
	if err != nil {
		return result, err
	}
	if err := v.checkPaymentMethod(ctx, &result, p); err != nil {
		return result, err
	}
	if err := v.checkCounterparty(ctx, &result, p); err != nil {
		return result, err
	}
	if err := v.checkDocument(ctx, &result, p); err != nil {
		return result, err
	}
	if err := v.checkAccount(ctx, &result, p, currency); err != nil {
		return result, err
	}
	return result, nil
}

func (v *ReferenceValidator) checkCurrency(ctx context.Context, result *finance.ValidationResult, p *finance.Payment) (*finance.Currency, error) {
	currency, err := v.currencyRepo.FindActiveByID(ctx, p.CurrencyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Add("currencyId", "NOT_FOUND", "Currency does not exist or is inactive")
			return nil, nil
		}
		return nil, fmt.Errorf("currency lookup failed: %w", err)
	}

	money, err := valueobject.NewMoney(p.Amount, currency.Code)
	if err != nil {
		return nil, fmt.Errorf("amount check failed: %w", err)
	}
	if money.Scale() > int32(currency.DecimalPlaces) {
		result.Add("amount", "INVALID_SCALE",
			fmt.Sprintf("Amount has more than %d decimal places", currency.DecimalPlaces))
	}
	return currency, nil
}

func (v *ReferenceValidator) checkPaymentMethod(ctx context.Context, result *finance.ValidationResult, p *finance.Payment) error {
	_, err := v.paymentMethodRepo.FindActiveByID(ctx, p.PaymentMethodID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Add("paymentMethodId", "NOT_FOUND", "Payment method does not exist or is inactive")
			return nil
		}
		return fmt.Errorf("payment method lookup failed: %w", err)
	}
	return nil
}

func (v *ReferenceValidator) checkCounterparty(ctx context.Context, result *finance.ValidationResult, p *finance.Payment) error {
	ref := p.CounterpartyRef()
	if ref.IsZero() {
		return nil
	}
	switch ref.Kind() {
	case finance.CounterpartyCustomer:
		if _, err := v.customerRepo.FindByID(ctx, ref.ID()); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("customerId", "NOT_FOUND", "Customer does not exist")
				return nil
			}
			return fmt.Errorf("customer lookup failed: %w", err)
		}
	case finance.CounterpartySupplier:
		if _, err := v.supplierRepo.FindByID(ctx, ref.ID()); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("supplierId", "NOT_FOUND", "Supplier does not exist")
				return nil
			}
			return fmt.Errorf("supplier lookup failed: %w", err)
		}
	}
	return nil
}

func (v *ReferenceValidator) checkDocument(ctx context.Context, result *finance.ValidationResult, p *finance.Payment) error {
	ref := p.DocumentRef()
	if ref.IsZero() {
		return nil
	}
	switch ref.Kind() {
	case finance.DocumentRefCustomerInvoice:
		invoice, err := v.customerInvoiceRepo.FindByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("customerInvoiceId", "NOT_FOUND", "Customer invoice does not exist")
				return nil
			}
			return fmt.Errorf("customer invoice lookup failed: %w", err)
		}
		v.checkInvoiceState(result, "customerInvoiceId", invoice.Status, invoice.CurrencyID == p.CurrencyID)
	case finance.DocumentRefSupplierInvoice:
		invoice, err := v.supplierInvoiceRepo.FindByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("supplierInvoiceId", "NOT_FOUND", "Supplier invoice does not exist")
				return nil
			}
			return fmt.Errorf("supplier invoice lookup failed: %w", err)
		}
		v.checkInvoiceState(result, "supplierInvoiceId", invoice.Status, invoice.CurrencyID == p.CurrencyID)
	case finance.DocumentRefSalesOrder:
		if _, err := v.salesOrderRepo.FindByID(ctx, ref.ID()); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("salesOrderId", "NOT_FOUND", "Sales order does not exist")
				return nil
			}
			return fmt.Errorf("sales order lookup failed: %w", err)
		}
	case finance.DocumentRefPurchaseOrder:
		if _, err := v.purchaseOrderRepo.FindByID(ctx, ref.ID()); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("purchaseOrderId", "NOT_FOUND", "Purchase order does not exist")
				return nil
			}
			return fmt.Errorf("purchase order lookup failed: %w", err)
		}
	}
	return nil
}

func (v *ReferenceValidator) checkInvoiceState(result *finance.ValidationResult, field string, status billing.InvoiceStatus, currencyMatches bool) {
	if status.IsTerminal() {
		result.Add(field, "INVOICE_NOT_PAYABLE",
			fmt.Sprintf("Invoice in status %s cannot accept further payments", status))
	}
	if !currencyMatches {
		result.Add("currencyId", "CURRENCY_MISMATCH", "Payment currency differs from the invoice currency")
	}
}

func (v *ReferenceValidator) checkAccount(ctx context.Context, result *finance.ValidationResult, p *finance.Payment, currency *finance.Currency) error {
	ref := p.AccountRef()
	switch ref.Kind() {
	case finance.AccountRefBankAccount:
		account, err := v.bankAccountRepo.FindByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("bankAccountId", "NOT_FOUND", "Bank account does not exist")
				return nil
			}
			return fmt.Errorf("bank account lookup failed: %w", err)
		}
		if !account.IsActive {
			result.Add("bankAccountId", "INACTIVE", "Bank account is inactive")
		}
	case finance.AccountRefCashSession:
		session, err := v.cashSessionRepo.FindByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				result.Add("cashRegisterSessionId", "NOT_FOUND", "Cash register session does not exist")
				return nil
			}
			return fmt.Errorf("cash session lookup failed: %w", err)
		}
		if !session.IsOpen() {
			result.Add("cashRegisterSessionId", "SESSION_NOT_OPEN", "Cash register session is not open")
		}
		// Inbound cash must match the register currency; outbound cash
		// follows whatever the register was funded with.
		if p.Direction == finance.PaymentDirectionInbound && currency != nil &&
			session.Register != nil && session.Register.CurrencyID != p.CurrencyID {
			result.Add("currencyId", "CURRENCY_MISMATCH", "Payment currency differs from the register currency")
		}
	}
	return nil
}
