package domain

import "time"

// AttemptStatus is the lifecycle state of an ingestion attempt row.
type AttemptStatus string

// Ingestion attempt statuses. A row is created in_progress and closed
// exactly once as success or failure; it is never mutated afterwards.
const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSuccess    AttemptStatus = "success"
	AttemptFailure    AttemptStatus = "failure"
)

// IngestionAttempt logs one (provider, query) execution. It is purely
// observational: written by the discovery orchestrator, read by nothing.
type IngestionAttempt struct {
	// ID is the unique identifier for the attempt row.
	ID string

	// Provider is the source provider name.
	Provider string

	// Query is the search query that was executed.
	Query string

	// Status is in_progress until the attempt is closed.
	Status AttemptStatus

	// Found is how many postings the provider reported for the query.
	Found int

	// Saved is how many rows the batch persist attributed to this
	// provider's postings.
	Saved int

	// Error is the last error text when Status is failure.
	Error string

	// StartedAt is when the attempt was opened.
	StartedAt time.Time

	// CompletedAt is when the attempt was closed. Nil while in progress.
	CompletedAt *time.Time
}

// IngestionResult is what a source provider returns for one fetch.
// Zero postings is a valid result, not an error.
type IngestionResult struct {
	// Postings are the normalised listings the provider produced.
	Postings []NormalizedPosting

	// TotalFound is the source-reported total for the query, which may
	// exceed len(Postings) when the provider caps its pagination.
	TotalFound int

	// Errors are non-fatal problems encountered while fetching, e.g.
	// a page that failed to parse.
	Errors []string
}

// DiscoveryOptions tunes one orchestrated discovery run.
type DiscoveryOptions struct {
	// Location narrows the search geographically when providers
	// support it.
	Location string

	// Limit caps how many postings each provider should return.
	// Zero means provider default.
	Limit int

	// Timeout bounds each individual provider fetch. A timeout is
	// treated identically to a transport failure for retry purposes.
	Timeout time.Duration
}

// DiscoveryResult aggregates one orchestrated run across all enabled
// providers. A failed provider contributes zero postings and an error
// string; the run as a whole still succeeds.
type DiscoveryResult struct {
	// Postings are the rows now current in storage for this run.
	Postings []Posting

	// TotalFound sums the source-reported totals across providers.
	TotalFound int

	// Errors collects provider failures and persistence errors.
	// Empty on a fully clean run.
	Errors []string
}
