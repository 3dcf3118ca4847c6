package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/partner"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	service    *PaymentService
	repos      *fakeTxRepos
	idem       *fakeIdempotencyStore
	currencies *fakeCurrencyRepo

	eur             *finance.Currency
	transfer        *finance.PaymentMethod
	cash            *finance.PaymentMethod
	customer        *partner.Customer
	supplier        *partner.Supplier
	bank            *finance.BankAccount
	register        *finance.CashRegister
	session         *finance.CashRegisterSession
	invoice         *billing.CustomerInvoice
	supplierInvoice *billing.SupplierInvoice
	actor           uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	ctx := context.Background()

	f := &paymentFixture{
		repos: newFakeTxRepos(),
		idem:  newFakeIdempotencyStore(),
		actor: uuid.New(),
	}

	currencies := newFakeCurrencyRepo()
	f.currencies = currencies
	methods := newFakePaymentMethodRepo()
	customers := newFakeCustomerRepo()
	suppliers := newFakeSupplierRepo()

	var err error
	f.eur, err = finance.NewCurrency("EUR", "Euro", "€", 2)
	require.NoError(t, err)
	require.NoError(t, currencies.Save(ctx, f.eur))

	f.transfer, err = finance.NewPaymentMethod("TRANSFER", "Bank transfer", finance.PaymentMethodKindTransfer)
	require.NoError(t, err)
	require.NoError(t, methods.Save(ctx, f.transfer))

	f.cash, err = finance.NewPaymentMethod("CASH", "Cash", finance.PaymentMethodKindCash)
	require.NoError(t, err)
	require.NoError(t, methods.Save(ctx, f.cash))

	f.customer, err = partner.NewCustomer("CUST-001", "Acme Retail")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, f.customer))

	f.supplier, err = partner.NewSupplier("SUPP-001", "Widget Works")
	require.NoError(t, err)
	require.NoError(t, suppliers.Save(ctx, f.supplier))

	f.bank, err = finance.NewBankAccount("Main account", "NL91ABNA0417164300", f.eur.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, f.repos.bankAccounts.Save(ctx, f.bank))

	f.register, err = finance.NewCashRegister("Front desk", f.eur.ID)
	require.NoError(t, err)
	f.register.Balance = decimal.NewFromInt(200)
	require.NoError(t, f.repos.cashRegisters.Save(ctx, f.register))

	f.session, err = finance.OpenCashRegisterSession(f.register.ID, f.actor, decimal.NewFromInt(200))
	require.NoError(t, err)
	require.NoError(t, f.repos.cashSessions.Save(ctx, f.session))

	f.invoice, err = billing.NewCustomerInvoice("INV-2026-001", f.customer.ID, f.eur.ID, time.Now(), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, f.repos.customerInvoices.Save(ctx, f.invoice))

	f.supplierInvoice, err = billing.NewSupplierInvoice("SINV-2026-001", f.supplier.ID, f.eur.ID, time.Now(), decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, f.repos.supplierInvoices.Save(ctx, f.supplierInvoice))

	validator := NewReferenceValidator(
		currencies,
		methods,
		customers,
		suppliers,
		f.repos.customerInvoices,
		f.repos.supplierInvoices,
		newFakeSalesOrderRepo(),
		newFakePurchaseOrderRepo(),
		f.repos.bankAccounts,
		f.repos.cashSessions,
	)

	resolver := NewPaymentResolver(
		currencies,
		methods,
		customers,
		suppliers,
		f.repos.customerInvoices,
		f.repos.supplierInvoices,
		newFakeSalesOrderRepo(),
		newFakePurchaseOrderRepo(),
		f.repos.bankAccounts,
		f.repos.cashSessions,
	)

	f.service = NewPaymentService(
		validator,
		NewAccountLedger(),
		NewInvoiceApplicator(),
		resolver,
		&fakeUnitOfWork{repos: f.repos},
		f.repos.payments,
		f.idem,
		shared.DefaultIdempotencyConfig(),
		nil,
	)
	return f
}

func (f *paymentFixture) inboundRequest(amount int64) RecordPaymentRequest {
	return RecordPaymentRequest{
		Date:            time.Now(),
		Amount:          decimal.NewFromInt(amount),
		CurrencyID:      f.eur.ID,
		PaymentMethodID: f.transfer.ID,
		Direction:       finance.PaymentDirectionInbound,
		Counterparty:    finance.CustomerRef(f.customer.ID),
		Document:        finance.CustomerInvoiceRef(f.invoice.ID),
		Account:         finance.BankAccountRef(f.bank.ID),
		ReferenceNumber: "PAY-001",
		RecordedBy:      f.actor,
	}
}

func (f *paymentFixture) outboundRequest(amount int64) RecordPaymentRequest {
	return RecordPaymentRequest{
		Date:            time.Now(),
		Amount:          decimal.NewFromInt(amount),
		CurrencyID:      f.eur.ID,
		PaymentMethodID: f.transfer.ID,
		Direction:       finance.PaymentDirectionOutbound,
		Counterparty:    finance.SupplierRef(f.supplier.ID),
		Document:        finance.SupplierInvoiceRef(f.supplierInvoice.ID),
		Account:         finance.BankAccountRef(f.bank.ID),
		RecordedBy:      f.actor,
	}
}

func TestPaymentService_RecordInbound(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	result, err := f.service.Record(ctx, f.inboundRequest(40))
	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.True(t, result.AccountBalance.Equal(decimal.NewFromInt(540)))

	stored, err := f.repos.payments.FindByID(ctx, result.Payment.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsReversed())

	assert.True(t, f.invoice.AmountPaid.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, f.invoice.Status)

	require.Len(t, f.repos.auditLog.entries, 1)
	assert.Equal(t, audit.ActionCreate, f.repos.auditLog.entries[0].Action)
	assert.Equal(t, result.Payment.ID, f.repos.auditLog.entries[0].EntityID)
	assert.Equal(t, f.transfer.ID.String(), f.repos.auditLog.entries[0].Details["payment_method_id"])
}

func TestPaymentService_InvoiceProgressesToPaid(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, err := f.service.Record(ctx, f.inboundRequest(40))
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, f.invoice.Status)

	_, err = f.service.Record(ctx, f.inboundRequest(60))
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, f.invoice.Status)
	assert.True(t, f.invoice.AmountRemaining().IsZero())
}

func TestPaymentService_ReverseRestoresEverything(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	recorded, err := f.service.Record(ctx, f.outboundRequest(120))
	require.NoError(t, err)
	assert.True(t, recorded.AccountBalance.Equal(decimal.NewFromInt(380)))
	assert.True(t, f.supplierInvoice.AmountPaid.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, f.supplierInvoice.Status)

	reversed, err := f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	require.NoError(t, err)
	assert.True(t, reversed.AccountBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, f.supplierInvoice.AmountPaid.IsZero())
	assert.Equal(t, billing.InvoiceStatusUnpaid, f.supplierInvoice.Status)

	assert.True(t, reversed.Payment.IsReversed())
	assert.Contains(t, reversed.Payment.Notes, "[reversed by")

	require.Len(t, f.repos.auditLog.entries, 2)
	assert.Equal(t, audit.ActionReverse, f.repos.auditLog.entries[1].Action)
	assert.Equal(t, f.transfer.ID.String(), f.repos.auditLog.entries[1].Details["payment_method_id"])
}

func TestPaymentService_ReverseTwiceConflicts(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	recorded, err := f.service.Record(ctx, f.inboundRequest(40))
	require.NoError(t, err)

	_, err = f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	require.NoError(t, err)

	_, err = f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_REVERSED", domainErr.Code)

	// The reversal applied exactly once.
	assert.True(t, f.invoice.AmountPaid.IsZero())
	assert.True(t, f.repos.bankAccounts.items[f.bank.ID].Balance.Equal(decimal.NewFromInt(500)))
}

func TestPaymentService_ReverseUnknownPayment(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.service.Reverse(context.Background(), uuid.New(), f.actor)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPaymentService_CashSessionLedger(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	req := RecordPaymentRequest{
		Date:            time.Now(),
		Amount:          decimal.NewFromInt(50),
		CurrencyID:      f.eur.ID,
		PaymentMethodID: f.cash.ID,
		Direction:       finance.PaymentDirectionInbound,
		Account:         finance.CashSessionRef(f.session.ID),
		RecordedBy:      f.actor,
	}

	recorded, err := f.service.Record(ctx, req)
	require.NoError(t, err)
	assert.True(t, recorded.AccountBalance.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, finance.AccountRefCashSession, recorded.Payment.Account.Kind)
	assert.Equal(t, "Front desk", recorded.Payment.Account.Name)

	entries, err := f.repos.cashTransactions.FindBySession(ctx, f.session.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, finance.CashTransactionKindPaymentIn, entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, entries[0].BalanceAfter.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, entries[0].PaymentID)
	assert.Equal(t, recorded.Payment.ID, *entries[0].PaymentID)

	reversed, err := f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	require.NoError(t, err)
	assert.True(t, reversed.AccountBalance.Equal(decimal.NewFromInt(200)))

	entries, err = f.repos.cashTransactions.FindBySession(ctx, f.session.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, finance.CashTransactionKindReversal, entries[1].Kind)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-50)))
	assert.True(t, entries[1].BalanceAfter.Equal(decimal.NewFromInt(200)))
}

func TestPaymentService_ValidationFailureRecordsNothing(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	req := f.inboundRequest(40)
	req.CurrencyID = uuid.New()

	_, err := f.service.Record(ctx, req)
	var result *finance.ValidationResult
	require.ErrorAs(t, err, &result)
	assert.NotEmpty(t, result.Violations)

	count, err := f.repos.payments.Count(ctx, finance.PaymentFilter{IncludeReversed: true})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, f.invoice.AmountPaid.IsZero())
}

func TestPaymentService_IdempotencyKeySuppressesDuplicate(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	req := f.inboundRequest(40)
	req.IdempotencyKey = "client-key-1"

	first, err := f.service.Record(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := f.service.Record(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)

	// The retry applied nothing.
	count, err := f.repos.payments.Count(ctx, finance.PaymentFilter{IncludeReversed: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.True(t, f.invoice.AmountPaid.Equal(decimal.NewFromInt(40)))
	assert.True(t, f.repos.bankAccounts.items[f.bank.ID].Balance.Equal(decimal.NewFromInt(540)))
}

func TestPaymentService_IdempotencyKeyReleasedOnFailure(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	f.repos.payments.createErr = errors.New("connection reset")

	req := f.inboundRequest(40)
	req.IdempotencyKey = "client-key-2"

	_, err := f.service.Record(ctx, req)
	require.Error(t, err)
	assert.NotContains(t, f.idem.seen, "client-key-2")

	f.repos.payments.createErr = nil
	retried, err := f.service.Record(ctx, req)
	require.NoError(t, err)
	assert.False(t, retried.Duplicate)
}

func TestPaymentService_InvalidInputRejected(t *testing.T) {
	f := newPaymentFixture(t)

	req := f.inboundRequest(0)
	_, err := f.service.Record(context.Background(), req)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestPaymentService_RecordResolvesSummaries(t *testing.T) {
	f := newPaymentFixture(t)

	result, err := f.service.Record(context.Background(), f.inboundRequest(40))
	require.NoError(t, err)

	details := result.Payment
	assert.Equal(t, "EUR", details.Currency.Code)
	assert.Equal(t, "Euro", details.Currency.Name)
	assert.Equal(t, "TRANSFER", details.PaymentMethod.Code)
	assert.Equal(t, "Bank transfer", details.PaymentMethod.Name)

	require.NotNil(t, details.Counterparty)
	assert.Equal(t, finance.CounterpartyCustomer, details.Counterparty.Kind)
	assert.Equal(t, f.customer.ID, details.Counterparty.ID)
	assert.Equal(t, "Acme Retail", details.Counterparty.Name)

	require.NotNil(t, details.Document)
	assert.Equal(t, finance.DocumentRefCustomerInvoice, details.Document.Kind)
	assert.Equal(t, "INV-2026-001", details.Document.Number)

	assert.Equal(t, finance.AccountRefBankAccount, details.Account.Kind)
	assert.Equal(t, f.bank.ID, details.Account.ID)
	assert.Equal(t, "Main account", details.Account.Name)
}

func TestPaymentService_ReverseResolvesSummaries(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	recorded, err := f.service.Record(ctx, f.outboundRequest(120))
	require.NoError(t, err)

	reversed, err := f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	require.NoError(t, err)

	details := reversed.Payment
	assert.Equal(t, "EUR", details.Currency.Code)
	require.NotNil(t, details.Counterparty)
	assert.Equal(t, finance.CounterpartySupplier, details.Counterparty.Kind)
	assert.Equal(t, "Widget Works", details.Counterparty.Name)
	require.NotNil(t, details.Document)
	assert.Equal(t, finance.DocumentRefSupplierInvoice, details.Document.Kind)
	assert.Equal(t, "SINV-2026-001", details.Document.Number)
	assert.Equal(t, "Main account", details.Account.Name)
}

func TestPaymentService_AssemblyFailureIsInternal(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	recorded, err := f.service.Record(ctx, f.inboundRequest(40))
	require.NoError(t, err)

	// The stored payment now references a currency that no longer loads.
	delete(f.currencies.items, f.eur.ID)

	_, err = f.service.Get(ctx, recorded.Payment.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInternal)
}

func TestPaymentService_List(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	recorded, err := f.service.Record(ctx, f.inboundRequest(40))
	require.NoError(t, err)
	_, err = f.service.Reverse(ctx, recorded.Payment.ID, f.actor)
	require.NoError(t, err)

	live, err := f.service.List(ctx, finance.PaymentFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Empty(t, live.Items)

	all, err := f.service.List(ctx, finance.PaymentFilter{Filter: shared.DefaultFilter(), IncludeReversed: true})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}
