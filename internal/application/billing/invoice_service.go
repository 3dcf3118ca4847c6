package billing

import (
	"context"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerInvoiceService handles customer invoice operations. Payment
// application is out of its hands: AmountPaid and payment status move only
// through the payment recording engine.
type CustomerInvoiceService struct {
	invoiceRepo billing.CustomerInvoiceRepository
}

// NewCustomerInvoiceService creates a new CustomerInvoiceService
func NewCustomerInvoiceService(invoiceRepo billing.CustomerInvoiceRepository) *CustomerInvoiceService {
	return &CustomerInvoiceService{invoiceRepo: invoiceRepo}
}

// Create creates a new unpaid customer invoice
func (s *CustomerInvoiceService) Create(ctx context.Context, req CreateCustomerInvoiceRequest) (*CustomerInvoiceResponse, error) {
	invoice, err := billing.NewCustomerInvoice(req.Number, req.CustomerID, req.CurrencyID, req.IssueDate, req.Total)
	if err != nil {
		return nil, err
	}
	invoice.DueDate = req.DueDate
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToCustomerInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves a customer invoice by ID
func (s *CustomerInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerInvoiceResponse(invoice)
	return &response, nil
}

// Void voids a customer invoice; voided invoices reject new payments
func (s *CustomerInvoiceService) Void(ctx context.Context, id uuid.UUID) (*CustomerInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToCustomerInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels an unpaid customer invoice
func (s *CustomerInvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*CustomerInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToCustomerInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves customer invoices with filtering and pagination
func (s *CustomerInvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerInvoiceResponse], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToCustomerInvoiceResponse(&invoices[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(items, total, page, filter.Limit())
	return &result, nil
}

// SupplierInvoiceService handles supplier invoice operations
type SupplierInvoiceService struct {
	invoiceRepo billing.SupplierInvoiceRepository
}

// NewSupplierInvoiceService creates a new SupplierInvoiceService
func NewSupplierInvoiceService(invoiceRepo billing.SupplierInvoiceRepository) *SupplierInvoiceService {
	return &SupplierInvoiceService{invoiceRepo: invoiceRepo}
}

// Create creates a new unpaid supplier invoice
func (s *SupplierInvoiceService) Create(ctx context.Context, req CreateSupplierInvoiceRequest) (*SupplierInvoiceResponse, error) {
	invoice, err := billing.NewSupplierInvoice(req.Number, req.SupplierID, req.CurrencyID, req.IssueDate, req.Total)
	if err != nil {
		return nil, err
	}
	invoice.DueDate = req.DueDate
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves a supplier invoice by ID
func (s *SupplierInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// Void voids a supplier invoice
func (s *SupplierInvoiceService) Void(ctx context.Context, id uuid.UUID) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels an unpaid supplier invoice
func (s *SupplierInvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves supplier invoices with filtering and pagination
func (s *SupplierInvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierInvoiceResponse], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToSupplierInvoiceResponse(&invoices[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(items, total, page, filter.Limit())
	return &result, nil
}
