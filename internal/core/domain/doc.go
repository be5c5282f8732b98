// Package domain defines the core business entities for JobScout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has no external dependencies and defines the fundamental types:
//
//   - NormalizedPosting: The provider-agnostic shape of a job listing
//   - Posting: The persisted, user-owned record derived from it
//   - Criteria: User-defined keyword filters gating the recommended view
//   - Match: The persisted relevance score between a user and a posting
//   - Profile: A candidate profile with its resume embedding
//   - IngestionAttempt: One log row per provider fetch execution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import the Go
// standard library. All other packages depend on domain, never the
// reverse.
package domain
