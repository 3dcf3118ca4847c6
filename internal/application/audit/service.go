package audit

import (
	"context"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/shared"
)

// Service exposes read access to the audit log. Entries are written by the
// operations themselves inside their transactions; nothing appends here.
type Service struct {
	repo audit.Repository
}

// NewService creates a new audit Service
func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves audit entries with filtering and pagination, newest first
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[audit.Entry], error) {
	entries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(entries, total, page, filter.Limit())
	return &result, nil
}
