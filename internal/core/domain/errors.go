package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist or does
	// not belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input. It is
	// returned before any I/O is performed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates an embedding was requested for empty or
	// whitespace-only text. The caller must supply descriptive text first.
	ErrEmptyInput = errors.New("empty input text")

	// ErrMissingCredentials indicates required credentials are absent for
	// an enabled provider. Providers fail fast at construction, not mid-run.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrNoProviders indicates a discovery run was requested with no
	// enabled providers registered.
	ErrNoProviders = errors.New("no providers enabled")

	// ErrDimensionMismatch indicates two vectors of different length were
	// compared. This is a programmer or deployment error and is never
	// silently truncated.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrPersistence indicates a batch write failed. Callers may safely
	// retry because all writes are idempotent upserts.
	ErrPersistence = errors.New("persistence failure")

	// ErrEmbeddingUnavailable indicates no embedding service is
	// configured. Scoring is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
