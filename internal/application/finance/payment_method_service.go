package finance

import (
	"context"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreatePaymentMethodRequest carries the fields for registering a payment method
type CreatePaymentMethodRequest struct {
	Code string                    `json:"code"`
	Name string                    `json:"name"`
	Kind finance.PaymentMethodKind `json:"kind"`
}

// PaymentMethodService handles payment method management
type PaymentMethodService struct {
	methodRepo finance.PaymentMethodRepository
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methodRepo finance.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo}
}

// Create registers a new active payment method
func (s *PaymentMethodService) Create(ctx context.Context, req CreatePaymentMethodRequest) (*finance.PaymentMethod, error) {
	method, err := finance.NewPaymentMethod(req.Code, req.Name, req.Kind)
	if err != nil {
		return nil, err
	}
	if err := s.methodRepo.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// GetByID retrieves a payment method by ID
func (s *PaymentMethodService) GetByID(ctx context.Context, id uuid.UUID) (*finance.PaymentMethod, error) {
	return s.methodRepo.FindByID(ctx, id)
}

// Deactivate retires a payment method from new payments
func (s *PaymentMethodService) Deactivate(ctx context.Context, id uuid.UUID) error {
	method, err := s.methodRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := method.Deactivate(); err != nil {
		return err
	}
	return s.methodRepo.Save(ctx, method)
}

// Activate re-enables a deactivated payment method
func (s *PaymentMethodService) Activate(ctx context.Context, id uuid.UUID) error {
	method, err := s.methodRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := method.Activate(); err != nil {
		return err
	}
	return s.methodRepo.Save(ctx, method)
}

// List retrieves payment methods with filtering and pagination
func (s *PaymentMethodService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[finance.PaymentMethod], error) {
	methods, err := s.methodRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.methodRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(methods, total, page, filter.Limit())
	return &result, nil
}
