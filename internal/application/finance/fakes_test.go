package finance

import (
	"context"
	"time"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/partner"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes shared by the validator and service tests.
// They hold aggregates in maps and implement the same contracts the GORM
// repositories do, including the conditional reversal write.

type fakeCurrencyRepo struct{ items map[uuid.UUID]*finance.Currency }

func newFakeCurrencyRepo() *fakeCurrencyRepo {
	return &fakeCurrencyRepo{items: map[uuid.UUID]*finance.Currency{}}
}

func (r *fakeCurrencyRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	if c, ok := r.items[id]; ok && c.IsActive {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	for _, c := range r.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCurrencyRepo) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Currency, error) {
	out := make([]finance.Currency, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCurrencyRepo) Save(ctx context.Context, c *finance.Currency) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCurrencyRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakePaymentMethodRepo struct{ items map[uuid.UUID]*finance.PaymentMethod }

func newFakePaymentMethodRepo() *fakePaymentMethodRepo {
	return &fakePaymentMethodRepo{items: map[uuid.UUID]*finance.PaymentMethod{}}
}

func (r *fakePaymentMethodRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	if m, ok := r.items[id]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentMethodRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	if m, ok := r.items[id]; ok && m.IsActive {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentMethodRepo) FindAll(ctx context.Context, filter shared.Filter) ([]finance.PaymentMethod, error) {
	out := make([]finance.PaymentMethod, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakePaymentMethodRepo) Save(ctx context.Context, m *finance.PaymentMethod) error {
	r.items[m.ID] = m
	return nil
}

func (r *fakePaymentMethodRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeCustomerRepo struct{ items map[uuid.UUID]*partner.Customer }

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: map[uuid.UUID]*partner.Customer{}}
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	for _, c := range r.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	out := make([]partner.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Save(ctx context.Context, c *partner.Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeSupplierRepo struct{ items map[uuid.UUID]*partner.Supplier }

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{items: map[uuid.UUID]*partner.Supplier{}}
}

func (r *fakeSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	if s, ok := r.items[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	for _, s := range r.items {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	out := make([]partner.Supplier, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Save(ctx context.Context, s *partner.Supplier) error {
	r.items[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeCustomerInvoiceRepo struct{ items map[uuid.UUID]*billing.CustomerInvoice }

func newFakeCustomerInvoiceRepo() *fakeCustomerInvoiceRepo {
	return &fakeCustomerInvoiceRepo{items: map[uuid.UUID]*billing.CustomerInvoice{}}
}

func (r *fakeCustomerInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.CustomerInvoice, error) {
	if i, ok := r.items[id]; ok {
		return i, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerInvoiceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.CustomerInvoice, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeCustomerInvoiceRepo) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CustomerInvoice, error) {
	out := make([]billing.CustomerInvoice, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *fakeCustomerInvoiceRepo) Save(ctx context.Context, i *billing.CustomerInvoice) error {
	r.items[i.ID] = i
	return nil
}

func (r *fakeCustomerInvoiceRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeSupplierInvoiceRepo struct{ items map[uuid.UUID]*billing.SupplierInvoice }

func newFakeSupplierInvoiceRepo() *fakeSupplierInvoiceRepo {
	return &fakeSupplierInvoiceRepo{items: map[uuid.UUID]*billing.SupplierInvoice{}}
}

func (r *fakeSupplierInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.SupplierInvoice, error) {
	if i, ok := r.items[id]; ok {
		return i, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierInvoiceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.SupplierInvoice, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeSupplierInvoiceRepo) FindAll(ctx context.Context, filter shared.Filter) ([]billing.SupplierInvoice, error) {
	out := make([]billing.SupplierInvoice, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *fakeSupplierInvoiceRepo) Save(ctx context.Context, i *billing.SupplierInvoice) error {
	r.items[i.ID] = i
	return nil
}

func (r *fakeSupplierInvoiceRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeSalesOrderRepo struct{ items map[uuid.UUID]*trade.SalesOrder }

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{items: map[uuid.UUID]*trade.SalesOrder{}}
}

func (r *fakeSalesOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	if o, ok := r.items[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSalesOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	out := make([]trade.SalesOrder, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeSalesOrderRepo) Save(ctx context.Context, o *trade.SalesOrder) error {
	r.items[o.ID] = o
	return nil
}

func (r *fakeSalesOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakePurchaseOrderRepo struct{ items map[uuid.UUID]*trade.PurchaseOrder }

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{items: map[uuid.UUID]*trade.PurchaseOrder{}}
}

func (r *fakePurchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	if o, ok := r.items[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	out := make([]trade.PurchaseOrder, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakePurchaseOrderRepo) Save(ctx context.Context, o *trade.PurchaseOrder) error {
	r.items[o.ID] = o
	return nil
}

func (r *fakePurchaseOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeBankAccountRepo struct{ items map[uuid.UUID]*finance.BankAccount }

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{items: map[uuid.UUID]*finance.BankAccount{}}
}

func (r *fakeBankAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	if a, ok := r.items[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBankAccountRepo) FindAll(ctx context.Context, filter shared.Filter) ([]finance.BankAccount, error) {
	out := make([]finance.BankAccount, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeBankAccountRepo) Save(ctx context.Context, a *finance.BankAccount) error {
	r.items[a.ID] = a
	return nil
}

func (r *fakeBankAccountRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeBankAccountRepo) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	a, ok := r.items[id]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return a.Balance, nil
}

type fakeCashRegisterRepo struct{ items map[uuid.UUID]*finance.CashRegister }

func newFakeCashRegisterRepo() *fakeCashRegisterRepo {
	return &fakeCashRegisterRepo{items: map[uuid.UUID]*finance.CashRegister{}}
}

func (r *fakeCashRegisterRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashRegister, error) {
	if reg, ok := r.items[id]; ok {
		return reg, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCashRegisterRepo) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CashRegister, error) {
	out := make([]finance.CashRegister, 0, len(r.items))
	for _, reg := range r.items {
		out = append(out, *reg)
	}
	return out, nil
}

func (r *fakeCashRegisterRepo) Save(ctx context.Context, reg *finance.CashRegister) error {
	r.items[reg.ID] = reg
	return nil
}

func (r *fakeCashRegisterRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeCashRegisterRepo) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	reg, ok := r.items[id]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	reg.Balance = reg.Balance.Add(delta)
	return reg.Balance, nil
}

type fakeCashSessionRepo struct {
	items     map[uuid.UUID]*finance.CashRegisterSession
	registers *fakeCashRegisterRepo
}

func newFakeCashSessionRepo(registers *fakeCashRegisterRepo) *fakeCashSessionRepo {
	return &fakeCashSessionRepo{
		items:     map[uuid.UUID]*finance.CashRegisterSession{},
		registers: registers,
	}
}

func (r *fakeCashSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashRegisterSession, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if s.Register == nil && r.registers != nil {
		if reg, ok := r.registers.items[s.RegisterID]; ok {
			s.Register = reg
		}
	}
	return s, nil
}

func (r *fakeCashSessionRepo) FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*finance.CashRegisterSession, error) {
	for _, s := range r.items {
		if s.RegisterID == registerID && s.IsOpen() {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCashSessionRepo) FindByRegister(ctx context.Context, registerID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterSession, error) {
	var out []finance.CashRegisterSession
	for _, s := range r.items {
		if s.RegisterID == registerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeCashSessionRepo) Save(ctx context.Context, s *finance.CashRegisterSession) error {
	r.items[s.ID] = s
	return nil
}

type fakeCashTransactionRepo struct{ entries []finance.CashRegisterTransaction }

func newFakeCashTransactionRepo() *fakeCashTransactionRepo {
	return &fakeCashTransactionRepo{}
}

func (r *fakeCashTransactionRepo) Append(ctx context.Context, tx *finance.CashRegisterTransaction) error {
	r.entries = append(r.entries, *tx)
	return nil
}

func (r *fakeCashTransactionRepo) FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterTransaction, error) {
	var out []finance.CashRegisterTransaction
	for _, e := range r.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	items map[uuid.UUID]*finance.Payment

	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{items: map[uuid.UUID]*finance.Payment{}}
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	if p, ok := r.items[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, error) {
	var out []finance.Payment
	for _, p := range r.items {
		if p.IsReversed() && !filter.IncludeReversed {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *finance.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) MarkReversed(ctx context.Context, p *finance.Payment) error {
	stored, ok := r.items[p.ID]
	if !ok {
		return shared.ErrNotFound
	}
	// Mirrors the conditional UPDATE: the write only lands while the stored
	// row is still live.
	if stored != p && stored.IsReversed() {
		return shared.NewDomainError("ALREADY_REVERSED", "Payment has already been reversed")
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) Count(ctx context.Context, filter finance.PaymentFilter) (int64, error) {
	payments, _ := r.FindAll(ctx, filter)
	return int64(len(payments)), nil
}

type fakeAuditRepo struct{ entries []audit.Entry }

func newFakeAuditRepo() *fakeAuditRepo { return &fakeAuditRepo{} }

func (r *fakeAuditRepo) Append(ctx context.Context, e *audit.Entry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	return r.entries, nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

// fakeTxRepos bundles the fakes behind the transaction-bound interface
type fakeTxRepos struct {
	payments         *fakePaymentRepo
	bankAccounts     *fakeBankAccountRepo
	cashRegisters    *fakeCashRegisterRepo
	cashSessions     *fakeCashSessionRepo
	cashTransactions *fakeCashTransactionRepo
	customerInvoices *fakeCustomerInvoiceRepo
	supplierInvoices *fakeSupplierInvoiceRepo
	auditLog         *fakeAuditRepo
}

func newFakeTxRepos() *fakeTxRepos {
	registers := newFakeCashRegisterRepo()
	return &fakeTxRepos{
		payments:         newFakePaymentRepo(),
		bankAccounts:     newFakeBankAccountRepo(),
		cashRegisters:    registers,
		cashSessions:     newFakeCashSessionRepo(registers),
		cashTransactions: newFakeCashTransactionRepo(),
		customerInvoices: newFakeCustomerInvoiceRepo(),
		supplierInvoices: newFakeSupplierInvoiceRepo(),
		auditLog:         newFakeAuditRepo(),
	}
}

func (f *fakeTxRepos) Payments() finance.PaymentRepository                       { return f.payments }
func (f *fakeTxRepos) BankAccounts() finance.BankAccountRepository               { return f.bankAccounts }
func (f *fakeTxRepos) CashRegisters() finance.CashRegisterRepository             { return f.cashRegisters }
func (f *fakeTxRepos) CashSessions() finance.CashRegisterSessionRepository       { return f.cashSessions }
func (f *fakeTxRepos) CashTransactions() finance.CashRegisterTransactionRepository {
	return f.cashTransactions
}
func (f *fakeTxRepos) CustomerInvoices() billing.CustomerInvoiceRepository { return f.customerInvoices }
func (f *fakeTxRepos) SupplierInvoices() billing.SupplierInvoiceRepository { return f.supplierInvoices }
func (f *fakeTxRepos) AuditLog() audit.Repository                          { return f.auditLog }

// fakeUnitOfWork runs the closure directly against the shared fakes. It does
// not roll anything back; tests that exercise failure paths assert on the
// returned error, not on state restoration.
type fakeUnitOfWork struct {
	repos *fakeTxRepos
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return fn(ctx, u.repos)
}

// fakeIdempotencyStore is a map-backed stand-in for the Redis store
type fakeIdempotencyStore struct {
	seen map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: map[string]string{}}
}

func (s *fakeIdempotencyStore) Remember(ctx context.Context, key, value string, ttl time.Duration) (bool, string, error) {
	if existing, ok := s.seen[key]; ok {
		return false, existing, nil
	}
	s.seen[key] = value
	return true, "", nil
}

func (s *fakeIdempotencyStore) Forget(ctx context.Context, key string) error {
	delete(s.seen, key)
	return nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }
