package persistence

import (
	"context"

	appfinance "github.com/gestio/backend/internal/application/finance"
	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// GormUnitOfWork implements the finance UnitOfWork on top of a GORM
// transaction. Every repository handed to the closure shares the tx handle,
// so either all writes commit or none do.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside one database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos appfinance.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newTxRepos(tx))
	})
}

// txRepos bundles transaction-bound repositories
type txRepos struct {
	payments         *GormPaymentRepository
	bankAccounts     *GormBankAccountRepository
	cashRegisters    *GormCashRegisterRepository
	cashSessions     *GormCashRegisterSessionRepository
	cashTransactions *GormCashRegisterTransactionRepository
	customerInvoices *GormCustomerInvoiceRepository
	supplierInvoices *GormSupplierInvoiceRepository
	auditLog         *GormAuditRepository
}

func newTxRepos(tx *gorm.DB) *txRepos {
	return &txRepos{
		payments:         NewGormPaymentRepository(tx),
		bankAccounts:     NewGormBankAccountRepository(tx),
		cashRegisters:    NewGormCashRegisterRepository(tx),
		cashSessions:     NewGormCashRegisterSessionRepository(tx),
		cashTransactions: NewGormCashRegisterTransactionRepository(tx),
		customerInvoices: NewGormCustomerInvoiceRepository(tx),
		supplierInvoices: NewGormSupplierInvoiceRepository(tx),
		auditLog:         NewGormAuditRepository(tx),
	}
}

func (r *txRepos) Payments() finance.PaymentRepository                       { return r.payments }
func (r *txRepos) BankAccounts() finance.BankAccountRepository               { return r.bankAccounts }
func (r *txRepos) CashRegisters() finance.CashRegisterRepository             { return r.cashRegisters }
func (r *txRepos) CashSessions() finance.CashRegisterSessionRepository       { return r.cashSessions }
func (r *txRepos) CashTransactions() finance.CashRegisterTransactionRepository {
	return r.cashTransactions
}
func (r *txRepos) CustomerInvoices() billing.CustomerInvoiceRepository { return r.customerInvoices }
func (r *txRepos) SupplierInvoices() billing.SupplierInvoiceRepository { return r.supplierInvoices }
func (r *txRepos) AuditLog() audit.Repository                          { return r.auditLog }

var _ appfinance.UnitOfWork = (*GormUnitOfWork)(nil)
var _ appfinance.TxRepos = (*txRepos)(nil)
