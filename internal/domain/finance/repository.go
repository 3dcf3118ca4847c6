package finance

import (
	"context"
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	// FindByID finds a currency by ID regardless of its active flag
	FindByID(ctx context.Context, id uuid.UUID) (*Currency, error)

	// FindActiveByID finds a currency that is still active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Currency, error)

	// FindByCode finds a currency by its ISO code
	FindByCode(ctx context.Context, code string) (*Currency, error)

	// FindAll finds all currencies matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Currency, error)

	// Save creates or updates a currency
	Save(ctx context.Context, currency *Currency) error

	// Count counts currencies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentMethod, error)
	Save(ctx context.Context, method *PaymentMethod) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BankAccount, error)
	Save(ctx context.Context, account *BankAccount) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ApplyBalanceDelta atomically increments the account balance by delta
	// (negative for outflows) and returns the post-delta balance. Must be
	// issued as a single UPDATE so concurrent deltas serialize on the row.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

// CashRegisterRepository defines the interface for cash register persistence
type CashRegisterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashRegister, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CashRegister, error)
	Save(ctx context.Context, register *CashRegister) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ApplyBalanceDelta atomically increments the register balance by delta
	// and returns the post-delta balance.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

// CashRegisterSessionRepository defines the interface for session persistence
type CashRegisterSessionRepository interface {
	// FindByID finds a session; Register is preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*CashRegisterSession, error)

	// FindOpenByRegister finds the open session of a register, if any
	FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*CashRegisterSession, error)

	// FindByRegister finds sessions of a register
	FindByRegister(ctx context.Context, registerID uuid.UUID, filter shared.Filter) ([]CashRegisterSession, error)

	// Save creates or updates a session
	Save(ctx context.Context, session *CashRegisterSession) error
}

// CashRegisterTransactionRepository persists register ledger entries
type CashRegisterTransactionRepository interface {
	// Append stores a new ledger entry. Entries are never updated.
	Append(ctx context.Context, tx *CashRegisterTransaction) error

	// FindBySession lists the ledger entries of a session
	FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]CashRegisterTransaction, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	Direction       *PaymentDirection
	CustomerID      *uuid.UUID
	SupplierID      *uuid.UUID
	CurrencyID      *uuid.UUID
	FromDate        *time.Time
	ToDate          *time.Time
	IncludeReversed bool
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID, reversed or not
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll finds payments matching the filter; reversed payments are
	// excluded unless the filter asks for them
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// Create persists a new payment row
	Create(ctx context.Context, payment *Payment) error

	// MarkReversed tombstones the payment iff it is still live, persisting
	// the reversal fields and annotated notes. Returns ErrNotFound when the
	// payment does not exist and a conflict error when it lost the race and
	// is already tombstoned.
	MarkReversed(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
}
