package billing

import (
	"context"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerInvoiceRepository defines the interface for customer invoice persistence
type CustomerInvoiceRepository interface {
	// FindByID finds a customer invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerInvoice, error)

	// FindByIDForUpdate finds a customer invoice by ID taking a row lock,
	// so concurrent payment applications serialize on the invoice
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*CustomerInvoice, error)

	// FindAll finds customer invoices matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CustomerInvoice, error)

	// Save creates or updates a customer invoice
	Save(ctx context.Context, invoice *CustomerInvoice) error

	// Count counts customer invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SupplierInvoiceRepository defines the interface for supplier invoice persistence
type SupplierInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierInvoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SupplierInvoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplierInvoice, error)
	Save(ctx context.Context, invoice *SupplierInvoice) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
