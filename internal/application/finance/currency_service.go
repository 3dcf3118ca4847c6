package finance

import (
	"context"
	"errors"
	"strings"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateCurrencyRequest carries the fields for registering a currency
type CreateCurrencyRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places"`
}

// UpdateCurrencyRequest carries the editable currency fields
type UpdateCurrencyRequest struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places"`
}

// CurrencyService handles currency management
type CurrencyService struct {
	currencyRepo finance.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(currencyRepo finance.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// Create registers a new active currency
func (s *CurrencyService) Create(ctx context.Context, req CreateCurrencyRequest) (*finance.Currency, error) {
	code := strings.ToUpper(req.Code)
	if _, err := s.currencyRepo.FindByCode(ctx, code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Currency with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	currency, err := finance.NewCurrency(code, req.Name, req.Symbol, req.DecimalPlaces)
	if err != nil {
		return nil, err
	}
	if err := s.currencyRepo.Save(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// GetByID retrieves a currency by ID
func (s *CurrencyService) GetByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	return s.currencyRepo.FindByID(ctx, id)
}

// Update updates a currency's descriptive fields
func (s *CurrencyService) Update(ctx context.Context, id uuid.UUID, req UpdateCurrencyRequest) (*finance.Currency, error) {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := currency.UpdateInfo(req.Name, req.Symbol, req.DecimalPlaces); err != nil {
		return nil, err
	}
	if err := s.currencyRepo.Save(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// Deactivate retires a currency from new payments
func (s *CurrencyService) Deactivate(ctx context.Context, id uuid.UUID) error {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := currency.Deactivate(); err != nil {
		return err
	}
	return s.currencyRepo.Save(ctx, currency)
}

// Activate re-enables a deactivated currency
func (s *CurrencyService) Activate(ctx context.Context, id uuid.UUID) error {
	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := currency.Activate(); err != nil {
		return err
	}
	return s.currencyRepo.Save(ctx, currency)
}

// List retrieves currencies with filtering and pagination
func (s *CurrencyService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[finance.Currency], error) {
	currencies, err := s.currencyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.currencyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(currencies, total, page, filter.Limit())
	return &result, nil
}
