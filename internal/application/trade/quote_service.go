package trade

import (
	"context"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// QuoteService handles quote lifecycle operations
type QuoteService struct {
	quoteRepo trade.QuoteRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo trade.QuoteRepository) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo}
}

// Create creates a new draft quote
func (s *QuoteService) Create(ctx context.Context, req CreateQuoteRequest) (*QuoteResponse, error) {
	quote, err := trade.NewQuote(req.Number, req.CustomerID, req.CurrencyID, req.IssueDate, req.Total)
	if err != nil {
		return nil, err
	}
	quote.ValidUntil = req.ValidUntil
	quote.Notes = req.Notes

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// Send marks a draft quote as sent
func (s *QuoteService) Send(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, id, func(q *trade.Quote) error { return q.Send() })
}

// Accept marks a sent quote as accepted
func (s *QuoteService) Accept(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, id, func(q *trade.Quote) error { return q.Accept() })
}

// Reject marks a sent quote as rejected
func (s *QuoteService) Reject(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, id, func(q *trade.Quote) error { return q.Reject() })
}

// Expire marks a sent quote as expired
func (s *QuoteService) Expire(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, id, func(q *trade.Quote) error { return q.Expire() })
}

func (s *QuoteService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.Quote) error) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(quote); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[QuoteResponse], error) {
	quotes, err := s.quoteRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.quoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		items = append(items, ToQuoteResponse(&quotes[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(items, total, page, filter.Limit())
	return &result, nil
}
