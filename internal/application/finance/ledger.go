package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountLedger posts payment deltas to the financial account a payment
// settles against. Bank accounts take a single atomic balance update; cash
// sessions additionally get an append-only entry in the register ledger
// carrying the running balance.
//
// All writes go through the transaction-bound repositories the caller hands
// in, so a ledger posting commits or rolls back with the rest of the payment.
type AccountLedger struct{}

// NewAccountLedger creates a new AccountLedger
func NewAccountLedger() *AccountLedger {
	return &AccountLedger{}
}

// Apply posts the signed delta to the payment's account and returns the
// post-delta balance. The payment passed validation before the transaction
// started, so a missing account row here is a server fault, not client input.
func (l *AccountLedger) Apply(
	ctx context.Context,
	repos TxRepos,
	payment *finance.Payment,
	delta decimal.Decimal,
	kind finance.CashTransactionKind,
	description string,
) (decimal.Decimal, error) {
	ref := payment.AccountRef()
	switch ref.Kind() {
	case finance.AccountRefBankAccount:
		balance, err := repos.BankAccounts().ApplyBalanceDelta(ctx, ref.ID(), delta)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("bank account %s vanished after validation: %w", ref.ID(), shared.ErrInternal)
			}
			return decimal.Zero, fmt.Errorf("failed to update bank balance: %w", err)
		}
		return balance, nil

	case finance.AccountRefCashSession:
		session, err := repos.CashSessions().FindByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("cash session %s vanished after validation: %w", ref.ID(), shared.ErrInternal)
			}
			return decimal.Zero, fmt.Errorf("failed to load cash session: %w", err)
		}

		balance, err := repos.CashRegisters().ApplyBalanceDelta(ctx, session.RegisterID, delta)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("cash register %s vanished after validation: %w", session.RegisterID, shared.ErrInternal)
			}
			return decimal.Zero, fmt.Errorf("failed to update register balance: %w", err)
		}

		paymentID := payment.ID
		entry, err := finance.NewCashRegisterTransaction(
			session.ID,
			session.RegisterID,
			&paymentID,
			kind,
			delta,
			balance,
			description,
		)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to build register ledger entry: %w", err)
		}
		if err := repos.CashTransactions().Append(ctx, entry); err != nil {
			return decimal.Zero, fmt.Errorf("failed to append register ledger entry: %w", err)
		}
		return balance, nil
	}

	return decimal.Zero, fmt.Errorf("payment %s carries no account reference: %w", payment.ID, shared.ErrInternal)
}
