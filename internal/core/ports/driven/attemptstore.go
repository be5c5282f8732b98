package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// AttemptStore records ingestion attempt logs. Rows are created at
// attempt start and closed exactly once at attempt end; they are never
// mutated afterwards and never read by other components.
type AttemptStore interface {
	// Create opens an in_progress attempt row and returns its id.
	Create(ctx context.Context, provider, query string) (string, error)

	// Close transitions the attempt to success or failure with its
	// final counts and error text.
	Close(ctx context.Context, attemptID string, status domain.AttemptStatus, found, saved int, errText string) error

	// List returns recent attempts, newest first, for operational
	// inspection. Limit zero means implementation default.
	List(ctx context.Context, limit int) ([]domain.IngestionAttempt, error)
}
