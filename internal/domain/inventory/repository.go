package inventory

import (
	"context"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CountSessionRepository defines the interface for count session persistence
type CountSessionRepository interface {
	// FindByID finds a count session by ID; Lines are preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*CountSession, error)

	// FindAll finds count sessions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CountSession, error)

	// Save creates or updates a count session and its lines
	Save(ctx context.Context, session *CountSession) error

	// Count counts sessions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
