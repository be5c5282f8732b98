package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

type stubProvider struct {
	name  string
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context, _ string, _ domain.DiscoveryOptions) (*domain.IngestionResult, error) {
	s.calls++
	return &domain.IngestionResult{}, nil
}

// TestRegistry_EnabledPreservesOrder tests registration-order iteration.
func TestRegistry_EnabledPreservesOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "remotive"})
	r.Register(&stubProvider{name: "adzuna"})

	enabled := r.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "remotive", enabled[0].Name())
	assert.Equal(t, "adzuna", enabled[1].Name())
}

// TestRegistry_RegisterReplaces tests that re-registering a name swaps
// the provider without duplicating it.
func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "adzuna"})
	replacement := &stubProvider{name: "adzuna"}
	r.Register(replacement)

	enabled := r.Enabled()
	require.Len(t, enabled, 1)
	assert.Same(t, replacement, enabled[0].(*stubProvider))
}

// TestRegistry_GetUnknown tests the not-found error.
func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("linkedin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRegistry_Names tests the sorted name listing.
func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{name: "remotive"})
	r.Register(&stubProvider{name: "adzuna"})

	assert.Equal(t, []string{"adzuna", "remotive"}, r.Names())
}

// TestWithRateLimit_Delegates tests passthrough behaviour.
func TestWithRateLimit_Delegates(t *testing.T) {
	inner := &stubProvider{name: "adzuna"}
	limited := WithRateLimit(inner, 100, 1)

	assert.Equal(t, "adzuna", limited.Name())
	_, err := limited.Fetch(context.Background(), "go", domain.DiscoveryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

// TestWithRateLimit_CancelledContext tests that a context cancelled
// while waiting surfaces as a rate-limit error.
func TestWithRateLimit_CancelledContext(t *testing.T) {
	inner := &stubProvider{name: "adzuna"}
	// One token per hour with the burst already spent below.
	limited := WithRateLimit(inner, 1.0/3600, 1)

	ctx := context.Background()
	_, err := limited.Fetch(ctx, "go", domain.DiscoveryOptions{})
	require.NoError(t, err)

	shortCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = limited.Fetch(shortCtx, "go", domain.DiscoveryOptions{})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 1, inner.calls)
}

// TestWithRateLimit_DisabledByZero tests that non-positive settings
// return the provider unwrapped.
func TestWithRateLimit_DisabledByZero(t *testing.T) {
	inner := &stubProvider{name: "adzuna"}
	assert.Same(t, inner, WithRateLimit(inner, 0, 1).(*stubProvider))
}
