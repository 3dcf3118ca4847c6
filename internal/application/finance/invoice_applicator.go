package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceApplicator is the only writer of invoice AmountPaid and payment
// status. It loads the invoice under a row lock, applies the signed delta,
// and re-derives the status through the domain rules.
//
// Orders are existence-only links and carry no paid-amount balance, so a
// payment against an order (or with no document at all) is a no-op here.
type InvoiceApplicator struct{}

// NewInvoiceApplicator creates a new InvoiceApplicator
func NewInvoiceApplicator() *InvoiceApplicator {
	return &InvoiceApplicator{}
}

// Apply moves the linked invoice's AmountPaid by delta. Positive deltas come
// from recording, negative ones from reversals restoring the prior state.
func (a *InvoiceApplicator) Apply(ctx context.Context, repos TxRepos, doc finance.DocumentRef, delta decimal.Decimal) error {
	if !doc.IsInvoice() {
		return nil
	}

	switch doc.Kind() {
	case finance.DocumentRefCustomerInvoice:
		invoice, err := repos.CustomerInvoices().FindByIDForUpdate(ctx, doc.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("customer invoice %s vanished after validation: %w", doc.ID(), shared.ErrInternal)
			}
			return fmt.Errorf("failed to lock customer invoice: %w", err)
		}
		invoice.ApplyPaymentDelta(delta)
		if err := repos.CustomerInvoices().Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save customer invoice: %w", err)
		}

	case finance.DocumentRefSupplierInvoice:
		invoice, err := repos.SupplierInvoices().FindByIDForUpdate(ctx, doc.ID())
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("supplier invoice %s vanished after validation: %w", doc.ID(), shared.ErrInternal)
			}
			return fmt.Errorf("failed to lock supplier invoice: %w", err)
		}
		invoice.ApplyPaymentDelta(delta)
		if err := repos.SupplierInvoices().Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save supplier invoice: %w", err)
		}
	}
	return nil
}
