package driving

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// Discoverer runs multi-source job discovery.
type Discoverer interface {
	// Run executes the query against every enabled provider, persists
	// the aggregate batch for the user, and returns whatever subset
	// succeeded together with a non-fatal error list. It errors only
	// for invalid input or when no providers are enabled.
	Run(ctx context.Context, userID, query string, opts domain.DiscoveryOptions) (*domain.DiscoveryResult, error)
}
