package inventory

import (
	"context"
	"time"

	"github.com/gestio/backend/internal/domain/inventory"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCountSessionRequest carries the fields for opening a count session
type CreateCountSessionRequest struct {
	Number    string    `json:"number"`
	CountDate time.Time `json:"count_date"`
	CreatedBy uuid.UUID `json:"created_by"`
	Notes     string    `json:"notes"`
}

// AddCountLineRequest carries the fields for one expected-quantity line
type AddCountLineRequest struct {
	ProductLabel string          `json:"product_label"`
	ExpectedQty  decimal.Decimal `json:"expected_qty"`
}

// RecordCountRequest carries one counted quantity
type RecordCountRequest struct {
	LineID     uuid.UUID       `json:"line_id"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	Remark     string          `json:"remark"`
}

// CountSessionService handles inventory count session operations
type CountSessionService struct {
	sessionRepo inventory.CountSessionRepository
}

// NewCountSessionService creates a new CountSessionService
func NewCountSessionService(sessionRepo inventory.CountSessionRepository) *CountSessionService {
	return &CountSessionService{sessionRepo: sessionRepo}
}

// Create creates a new draft count session
func (s *CountSessionService) Create(ctx context.Context, req CreateCountSessionRequest) (*inventory.CountSession, error) {
	session, err := inventory.NewCountSession(req.Number, req.CountDate, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	session.Notes = req.Notes

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByID retrieves a count session by ID with its lines
func (s *CountSessionService) GetByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	return s.sessionRepo.FindByID(ctx, id)
}

// AddLine adds an expected-quantity line to a draft session
func (s *CountSessionService) AddLine(ctx context.Context, id uuid.UUID, req AddCountLineRequest) (*inventory.CountSession, error) {
	return s.mutate(ctx, id, func(cs *inventory.CountSession) error {
		return cs.AddLine(req.ProductLabel, req.ExpectedQty)
	})
}

// Start moves a draft session with lines into counting
func (s *CountSessionService) Start(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	return s.mutate(ctx, id, func(cs *inventory.CountSession) error { return cs.Start() })
}

// RecordCount stores one counted quantity on a line
func (s *CountSessionService) RecordCount(ctx context.Context, id uuid.UUID, req RecordCountRequest) (*inventory.CountSession, error) {
	return s.mutate(ctx, id, func(cs *inventory.CountSession) error {
		return cs.RecordCount(req.LineID, req.CountedQty, req.Remark)
	})
}

// Complete closes a fully counted session
func (s *CountSessionService) Complete(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	return s.mutate(ctx, id, func(cs *inventory.CountSession) error { return cs.Complete() })
}

// Cancel abandons a session that has not completed
func (s *CountSessionService) Cancel(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	return s.mutate(ctx, id, func(cs *inventory.CountSession) error { return cs.Cancel() })
}

func (s *CountSessionService) mutate(ctx context.Context, id uuid.UUID, fn func(*inventory.CountSession) error) (*inventory.CountSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// List retrieves count sessions with filtering and pagination
func (s *CountSessionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.CountSession], error) {
	sessions, err := s.sessionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.sessionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(sessions, total, page, filter.Limit())
	return &result, nil
}
