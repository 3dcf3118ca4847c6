package finance

import (
	"context"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/finance"
)

// TxRepos is the set of repositories bound to one database transaction.
// The recorder and reversal engine thread it explicitly through the ledger
// and the invoice applicator so every write lands in the same transaction.
type TxRepos interface {
	Payments() finance.PaymentRepository
	BankAccounts() finance.BankAccountRepository
	CashRegisters() finance.CashRegisterRepository
	CashSessions() finance.CashRegisterSessionRepository
	CashTransactions() finance.CashRegisterTransactionRepository
	CustomerInvoices() billing.CustomerInvoiceRepository
	SupplierInvoices() billing.SupplierInvoiceRepository
	AuditLog() audit.Repository
}

// UnitOfWork runs a closure inside one database transaction. Any error from
// the closure rolls the whole transaction back; there are no partial commits.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
