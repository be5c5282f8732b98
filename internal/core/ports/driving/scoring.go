package driving

import (
	"context"
)

// ScoreResult is the outcome of scoring one posting for one user.
type ScoreResult struct {
	// Score is the integer relevance score in [0, 100].
	Score int

	// Similarity is the raw cosine similarity behind the score.
	Similarity float64
}

// Scorer embeds text and computes relevance scores between a candidate
// profile and persisted postings.
type Scorer interface {
	// Embed converts text to a vector via the embedding capability.
	// Returns domain.ErrEmptyInput for empty or whitespace-only text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Score computes and upserts the match for one posting. It returns
	// (nil, nil) when the user has no profile embedding yet or the
	// posting has no stored vector - neither is an error. Vectors of
	// mismatched dimensionality fail loudly.
	Score(ctx context.Context, userID, postingID string) (*ScoreResult, error)

	// BatchScore re-scores every eligible posting with a stored vector
	// for the user in one upsert pass, returning how many matches were
	// written. This is the steady-state path; Score exists for
	// interactive re-scans.
	BatchScore(ctx context.Context, userID string) (int, error)

	// ProfileChanged invalidates any cached profile vector and runs a
	// batch re-score for the user.
	ProfileChanged(ctx context.Context, userID string) (int, error)
}
