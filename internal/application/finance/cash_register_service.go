package finance

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCashRegisterRequest carries the fields for registering a cash register
type CreateCashRegisterRequest struct {
	Name       string    `json:"name"`
	CurrencyID uuid.UUID `json:"currency_id"`
}

// OpenSessionRequest carries the fields for opening a register session
type OpenSessionRequest struct {
	RegisterID    uuid.UUID       `json:"register_id"`
	OpenedBy      uuid.UUID       `json:"opened_by"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CloseSessionRequest carries the fields for closing a register session
type CloseSessionRequest struct {
	SessionID     uuid.UUID       `json:"session_id"`
	ClosedBy      uuid.UUID       `json:"closed_by"`
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	Notes         string          `json:"notes"`
}

// CashRegisterService handles cash register and session management.
// A register holds at most one open session at a time; payments settle
// against the open session, never against the register directly.
type CashRegisterService struct {
	registerRepo finance.CashRegisterRepository
	sessionRepo  finance.CashRegisterSessionRepository
	txRepo       finance.CashRegisterTransactionRepository
}

// NewCashRegisterService creates a new CashRegisterService
func NewCashRegisterService(
	registerRepo finance.CashRegisterRepository,
	sessionRepo finance.CashRegisterSessionRepository,
	txRepo finance.CashRegisterTransactionRepository,
) *CashRegisterService {
	return &CashRegisterService{
		registerRepo: registerRepo,
		sessionRepo:  sessionRepo,
		txRepo:       txRepo,
	}
}

// Create registers a new active cash register
func (s *CashRegisterService) Create(ctx context.Context, req CreateCashRegisterRequest) (*finance.CashRegister, error) {
	register, err := finance.NewCashRegister(req.Name, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	if err := s.registerRepo.Save(ctx, register); err != nil {
		return nil, err
	}
	return register, nil
}

// GetByID retrieves a cash register by ID
func (s *CashRegisterService) GetByID(ctx context.Context, id uuid.UUID) (*finance.CashRegister, error) {
	return s.registerRepo.FindByID(ctx, id)
}

// List retrieves cash registers with filtering and pagination
func (s *CashRegisterService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[finance.CashRegister], error) {
	registers, err := s.registerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.registerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(registers, total, page, filter.Limit())
	return &result, nil
}

// OpenSession opens a session on a register that has none open
func (s *CashRegisterService) OpenSession(ctx context.Context, req OpenSessionRequest) (*finance.CashRegisterSession, error) {
	register, err := s.registerRepo.FindByID(ctx, req.RegisterID)
	if err != nil {
		return nil, err
	}
	if !register.IsActive {
		return nil, shared.NewDomainError("REGISTER_INACTIVE", "Cash register is not active")
	}

	if _, err := s.sessionRepo.FindOpenByRegister(ctx, req.RegisterID); err == nil {
		return nil, shared.NewDomainError("SESSION_ALREADY_OPEN", "Register already has an open session")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	session, err := finance.OpenCashRegisterSession(req.RegisterID, req.OpenedBy, req.OpeningAmount)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseSession closes an open session with the counted closing amount
func (s *CashRegisterService) CloseSession(ctx context.Context, req CloseSessionRequest) (*finance.CashRegisterSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Close(req.ClosedBy, req.ClosingAmount, req.Notes); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session with its register
func (s *CashRegisterService) GetSession(ctx context.Context, id uuid.UUID) (*finance.CashRegisterSession, error) {
	return s.sessionRepo.FindByID(ctx, id)
}

// ListSessions retrieves the sessions of a register
func (s *CashRegisterService) ListSessions(ctx context.Context, registerID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterSession, error) {
	return s.sessionRepo.FindByRegister(ctx, registerID, filter)
}

// ListSessionTransactions retrieves the ledger entries of a session
func (s *CashRegisterService) ListSessionTransactions(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterTransaction, error) {
	return s.txRepo.FindBySession(ctx, sessionID, filter)
}
