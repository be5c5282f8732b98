package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// Hydrator fetches deep data for a posting that was discovered through a
// lightweight listing API. It returns a partial NormalizedPosting whose
// non-empty fields are merged into the stored row, or nil when the
// source has nothing more to offer.
type Hydrator interface {
	// Hydrate retrieves enrichment data for a source-local posting id.
	Hydrate(ctx context.Context, sourceID string) (*domain.NormalizedPosting, error)
}
