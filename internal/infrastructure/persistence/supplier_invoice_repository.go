package persistence

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSupplierInvoiceRepository implements SupplierInvoiceRepository using GORM
type GormSupplierInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSupplierInvoiceRepository creates a new GormSupplierInvoiceRepository
func NewGormSupplierInvoiceRepository(db *gorm.DB) *GormSupplierInvoiceRepository {
	return &GormSupplierInvoiceRepository{db: db}
}

// FindByID finds a supplier invoice by ID
func (r *GormSupplierInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SupplierInvoice, error) {
	var invoice billing.SupplierInvoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate finds a supplier invoice by ID taking a row lock
func (r *GormSupplierInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.SupplierInvoice, error) {
	var invoice billing.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds supplier invoices matching the filter
func (r *GormSupplierInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.SupplierInvoice, error) {
	var invoices []billing.SupplierInvoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.SupplierInvoice{}), filter)
	query = applyListFilter(query, filter, "issue_date DESC, number DESC")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates a supplier invoice
func (r *GormSupplierInvoiceRepository) Save(ctx context.Context, invoice *billing.SupplierInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Count counts supplier invoices matching the filter
func (r *GormSupplierInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.SupplierInvoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplierInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	return query
}

var _ billing.SupplierInvoiceRepository = (*GormSupplierInvoiceRepository)(nil)
