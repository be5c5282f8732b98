package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.SourceProvider = (*RateLimited)(nil)

// RateLimited wraps a source provider with a client-side token bucket,
// keeping scheduled discovery inside the upstream API's quota.
type RateLimited struct {
	inner   driven.SourceProvider
	limiter *rate.Limiter
}

// WithRateLimit wraps a provider at requestsPerSecond with the given
// burst. Non-positive arguments return the provider unwrapped.
func WithRateLimit(p driven.SourceProvider, requestsPerSecond float64, burst int) driven.SourceProvider {
	if requestsPerSecond <= 0 || burst <= 0 {
		return p
	}
	return &RateLimited{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider's name.
func (r *RateLimited) Name() string {
	return r.inner.Name()
}

// Fetch waits for a token, then delegates. A context expiring in the
// queue surfaces as a rate-limit error so the retry loop treats it like
// any other transient failure.
func (r *RateLimited) Fetch(ctx context.Context, query string, opts domain.DiscoveryOptions) (*domain.IngestionResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRateLimited, r.inner.Name(), err)
	}
	return r.inner.Fetch(ctx, query, opts)
}
