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

// GormCustomerInvoiceRepository implements CustomerInvoiceRepository using GORM
type GormCustomerInvoiceRepository struct {
	db *gorm.DB
}

// NewGormCustomerInvoiceRepository creates a new GormCustomerInvoiceRepository
func NewGormCustomerInvoiceRepository(db *gorm.DB) *GormCustomerInvoiceRepository {
	return &GormCustomerInvoiceRepository{db: db}
}

// FindByID finds a customer invoice by ID
func (r *GormCustomerInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CustomerInvoice, error) {
	var invoice billing.CustomerInvoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate finds a customer invoice by ID taking a row lock, so
// concurrent payment applications serialize on the invoice
func (r *GormCustomerInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.CustomerInvoice, error) {
	var invoice billing.CustomerInvoice
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

// FindAll finds customer invoices matching the filter
func (r *GormCustomerInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CustomerInvoice, error) {
	var invoices []billing.CustomerInvoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.CustomerInvoice{}), filter)
	query = applyListFilter(query, filter, "issue_date DESC, number DESC")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates a customer invoice
func (r *GormCustomerInvoiceRepository) Save(ctx context.Context, invoice *billing.CustomerInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Count counts customer invoices matching the filter
func (r *GormCustomerInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.CustomerInvoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCustomerInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	return query
}

var _ billing.CustomerInvoiceRepository = (*GormCustomerInvoiceRepository)(nil)
