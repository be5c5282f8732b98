package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// CriteriaStore persists user-defined criteria.
type CriteriaStore interface {
	// Save creates or updates a criteria.
	Save(ctx context.Context, criteria domain.Criteria) error

	// Get retrieves a criteria by id, scoped to the owning user.
	Get(ctx context.Context, userID, criteriaID string) (*domain.Criteria, error)

	// Delete removes a criteria. Returns domain.ErrNotFound when the
	// row does not exist or belongs to someone else.
	Delete(ctx context.Context, userID, criteriaID string) error

	// ListByUser returns all of a user's criteria.
	ListByUser(ctx context.Context, userID string) ([]domain.Criteria, error)

	// ListActive returns the user's active criteria only.
	ListActive(ctx context.Context, userID string) ([]domain.Criteria, error)

	// ListUsersWithActive returns the ids of every user holding at
	// least one active criteria. Feeds the discovery scheduler.
	ListUsersWithActive(ctx context.Context) ([]string, error)
}
