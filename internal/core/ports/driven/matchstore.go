package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// MatchStore persists relevance scores. (UserID, PostingID) is unique;
// every write is an upsert on that pair.
type MatchStore interface {
	// Upsert creates or updates the match for (match.UserID,
	// match.PostingID).
	Upsert(ctx context.Context, match domain.Match) error

	// UpsertBatch writes many matches in one pass.
	UpsertBatch(ctx context.Context, matches []domain.Match) error

	// Get retrieves the match for a (user, posting) pair.
	// Returns domain.ErrNotFound when no score has been computed yet.
	Get(ctx context.Context, userID, postingID string) (*domain.Match, error)

	// ListByUser returns all matches for a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Match, error)
}
