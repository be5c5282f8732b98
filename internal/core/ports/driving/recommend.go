package driving

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// RecommendedPosting is one row of the computed recommended view: a
// posting plus its score as display metadata. Score is nil when the
// posting has not been scored yet.
type RecommendedPosting struct {
	Posting    domain.Posting
	Score      *int
	Similarity *float64
}

// Recommender computes the criteria-gated recommended view and manages
// the criteria themselves.
type Recommender interface {
	// RecommendedView returns the user's recommended postings: status
	// "recommended" AND title matching at least one active criteria
	// keyword. Zero active criteria yields an empty view - there is no
	// show-everything fallback. The view is computed at read time,
	// never stored.
	RecommendedView(ctx context.Context, userID string) ([]RecommendedPosting, error)

	// SaveCriteria validates and persists a criteria, stamping id and
	// timestamps for new rows.
	SaveCriteria(ctx context.Context, criteria domain.Criteria) (*domain.Criteria, error)

	// DeleteCriteria removes a user's criteria.
	DeleteCriteria(ctx context.Context, userID, criteriaID string) error

	// ListCriteria returns all criteria for a user.
	ListCriteria(ctx context.Context, userID string) ([]domain.Criteria, error)
}
