package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// SourceProvider fetches raw postings from one external job source and
// normalises them into the common record shape. Each provider performs
// its own network I/O and pagination, maps source-specific payloads on a
// best-effort basis, and computes or delegates the content hash.
//
// A provider must not error for zero results - only for transport or
// auth failures.
type SourceProvider interface {
	// Name returns the provider's registry key, e.g. "adzuna".
	Name() string

	// Fetch retrieves postings for a query. The context carries the
	// caller-supplied timeout; exceeding it is a transport failure.
	Fetch(ctx context.Context, query string, opts domain.DiscoveryOptions) (*domain.IngestionResult, error)
}

// ProviderRegistry holds the configured providers. Provider selection is
// pure data: an "enabled" flag driven by configuration (typically the
// presence of credentials), not control flow.
type ProviderRegistry interface {
	// Enabled returns the providers that will participate in a run,
	// in registration order for deterministic iteration.
	Enabled() []SourceProvider

	// Get returns the named provider, or domain.ErrNotFound for an
	// unknown name. Providers without credentials are never
	// registered, so absence covers "disabled" too.
	Get(name string) (SourceProvider, error)
}
