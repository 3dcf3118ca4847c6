package finance

import (
	"context"
	"testing"
	"time"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validatorFixture wires a ReferenceValidator over shared in-memory fakes
// with one complete set of live reference data.
type validatorFixture struct {
	validator *ReferenceValidator

	currencies *fakeCurrencyRepo
	methods    *fakePaymentMethodRepo
	customers  *fakeCustomerRepo
	suppliers  *fakeSupplierRepo
	repos      *fakeTxRepos

	eur      *finance.Currency
	usd      *finance.Currency
	transfer *finance.PaymentMethod
	customer *partner.Customer
	supplier *partner.Supplier
	bank     *finance.BankAccount
	register *finance.CashRegister
	session  *finance.CashRegisterSession
	invoice  *billing.CustomerInvoice
}

func newValidatorFixture(t *testing.T) *validatorFixture {
	t.Helper()
	ctx := context.Background()

	f := &validatorFixture{
		currencies: newFakeCurrencyRepo(),
		methods:    newFakePaymentMethodRepo(),
		customers:  newFakeCustomerRepo(),
		suppliers:  newFakeSupplierRepo(),
		repos:      newFakeTxRepos(),
	}

	var err error
	f.eur, err = finance.NewCurrency("EUR", "Euro", "€", 2)
	require.NoError(t, err)
	require.NoError(t, f.currencies.Save(ctx, f.eur))

	f.usd, err = finance.NewCurrency("USD", "US Dollar", "$", 2)
	require.NoError(t, err)
	require.NoError(t, f.currencies.Save(ctx, f.usd))

	f.transfer, err = finance.NewPaymentMethod("TRANSFER", "Bank transfer", finance.PaymentMethodKindTransfer)
	require.NoError(t, err)
	require.NoError(t, f.methods.Save(ctx, f.transfer))

	f.customer, err = partner.NewCustomer("CUST-001", "Acme Retail")
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(ctx, f.customer))

	f.supplier, err = partner.NewSupplier("SUPP-001", "Widget Works")
	require.NoError(t, err)
	require.NoError(t, f.suppliers.Save(ctx, f.supplier))

	f.bank, err = finance.NewBankAccount("Main account", "NL91ABNA0417164300", f.eur.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, f.repos.bankAccounts.Save(ctx, f.bank))

	f.register, err = finance.NewCashRegister("Front desk", f.eur.ID)
	require.NoError(t, err)
	require.NoError(t, f.repos.cashRegisters.Save(ctx, f.register))

	f.session, err = finance.OpenCashRegisterSession(f.register.ID, uuid.New(), decimal.NewFromInt(200))
	require.NoError(t, err)
	require.NoError(t, f.repos.cashSessions.Save(ctx, f.session))

	f.invoice, err = billing.NewCustomerInvoice("INV-2026-001", f.customer.ID, f.eur.ID, time.Now(), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, f.repos.customerInvoices.Save(ctx, f.invoice))

	f.validator = NewReferenceValidator(
		f.currencies,
		f.methods,
		f.customers,
		f.suppliers,
		f.repos.customerInvoices,
		f.repos.supplierInvoices,
		newFakeSalesOrderRepo(),
		newFakePurchaseOrderRepo(),
		f.repos.bankAccounts,
		f.repos.cashSessions,
	)
	return f
}

func (f *validatorFixture) newPayment(t *testing.T, currencyID uuid.UUID, counterparty finance.CounterpartyRef, document finance.DocumentRef, account finance.AccountRef) *finance.Payment {
	t.Helper()
	p, err := finance.NewPayment(
		time.Now(),
		decimal.NewFromInt(40),
		currencyID,
		f.transfer.ID,
		finance.PaymentDirectionInbound,
		counterparty,
		document,
		account,
		"PAY-001",
		"",
		uuid.New(),
	)
	require.NoError(t, err)
	return p
}

func violationCodes(result finance.ValidationResult) []string {
	codes := make([]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func TestReferenceValidator_Valid(t *testing.T) {
	f := newValidatorFixture(t)
	p := f.newPayment(t, f.eur.ID,
		finance.CustomerRef(f.customer.ID),
		finance.CustomerInvoiceRef(f.invoice.ID),
		finance.BankAccountRef(f.bank.ID))

	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, result.IsValid())
}

func TestReferenceValidator_AccumulatesAllViolations(t *testing.T) {
	f := newValidatorFixture(t)
	p, err := finance.NewPayment(
		time.Now(),
		decimal.NewFromInt(40),
		uuid.New(), // unknown currency
		uuid.New(), // unknown method
		finance.PaymentDirectionInbound,
		finance.CustomerRef(uuid.New()),        // unknown customer
		finance.CustomerInvoiceRef(uuid.New()), // unknown invoice
		finance.BankAccountRef(uuid.New()),     // unknown account
		"", "", uuid.New(),
	)
	require.NoError(t, err)

	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Len(t, result.Violations, 5)
	assert.Contains(t, result.Error(), "currencyId")
}

func TestReferenceValidator_InactiveCurrency(t *testing.T) {
	f := newValidatorFixture(t)
	require.NoError(t, f.eur.Deactivate())

	p := f.newPayment(t, f.eur.ID, finance.CounterpartyRef{}, finance.DocumentRef{}, finance.BankAccountRef(f.bank.ID))
	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "NOT_FOUND")
}

func TestReferenceValidator_TerminalInvoice(t *testing.T) {
	f := newValidatorFixture(t)
	require.NoError(t, f.invoice.Void())

	p := f.newPayment(t, f.eur.ID,
		finance.CustomerRef(f.customer.ID),
		finance.CustomerInvoiceRef(f.invoice.ID),
		finance.BankAccountRef(f.bank.ID))

	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "INVOICE_NOT_PAYABLE")
}

func TestReferenceValidator_InvoiceCurrencyMismatch(t *testing.T) {
	f := newValidatorFixture(t)

	p := f.newPayment(t, f.usd.ID,
		finance.CustomerRef(f.customer.ID),
		finance.CustomerInvoiceRef(f.invoice.ID),
		finance.BankAccountRef(f.bank.ID))

	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "CURRENCY_MISMATCH")
}

func TestReferenceValidator_InactiveBankAccount(t *testing.T) {
	f := newValidatorFixture(t)
	f.bank.IsActive = false

	p := f.newPayment(t, f.eur.ID, finance.CounterpartyRef{}, finance.DocumentRef{}, finance.BankAccountRef(f.bank.ID))
	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "INACTIVE")
}

func TestReferenceValidator_ClosedSession(t *testing.T) {
	f := newValidatorFixture(t)
	require.NoError(t, f.session.Close(uuid.New(), decimal.NewFromInt(200), ""))

	p := f.newPayment(t, f.eur.ID, finance.CounterpartyRef{}, finance.DocumentRef{}, finance.CashSessionRef(f.session.ID))
	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "SESSION_NOT_OPEN")
}

func TestReferenceValidator_InboundCashCurrencyMismatch(t *testing.T) {
	f := newValidatorFixture(t)

	p := f.newPayment(t, f.usd.ID, finance.CounterpartyRef{}, finance.DocumentRef{}, finance.CashSessionRef(f.session.ID))
	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "CURRENCY_MISMATCH")
}

func TestReferenceValidator_AmountScaleExceedsCurrency(t *testing.T) {
	f := newValidatorFixture(t)
	p, err := finance.NewPayment(
		time.Now(),
		decimal.RequireFromString("40.005"),
		f.eur.ID,
		f.transfer.ID,
		finance.PaymentDirectionInbound,
		finance.CustomerRef(f.customer.ID),
		finance.DocumentRef{},
		finance.BankAccountRef(f.bank.ID),
		"", "", uuid.New(),
	)
	require.NoError(t, err)

	result, err := f.validator.Validate(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, violationCodes(result), "INVALID_SCALE")
}
