package driving

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// Ingestor deduplicates and idempotently persists normalised postings.
type Ingestor interface {
	// Persist maps, defaults, dedups and batch-upserts postings for a
	// user, returning the rows now current for the batch hashes. On
	// total storage failure it returns an empty slice and an error the
	// caller may convert to a collected error string; re-running is
	// always safe.
	Persist(ctx context.Context, userID string, batch []domain.NormalizedPosting) ([]domain.Posting, error)

	// Hydrate deep-enriches a stored posting via the hydrator
	// capability. Returns true when the posting is hydrated (already
	// or newly). On success it asynchronously regenerates the posting
	// embedding; failures there are logged, never surfaced.
	Hydrate(ctx context.Context, userID, postingID string) (bool, error)
}
