package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Match is the persisted relevance score between one user and one
// posting. (UserID, PostingID) is unique: re-scoring updates the row in
// place, never duplicates it.
type Match struct {
	// UserID and PostingID form the unique pair.
	UserID    string
	PostingID string

	// Score is the integer relevance score in [0, 100].
	Score int

	// Similarity is the raw cosine similarity that produced the score.
	Similarity float64

	// GapAnalysis is an optional structured payload produced by an
	// external generator. Opaque to this core.
	GapAnalysis json.RawMessage

	// CalculatedAt is when the score was last computed.
	CalculatedAt time.Time
}

// NormalizeScore converts a cosine similarity in [-1, 1] to the integer
// score scale. The mapping is round(s*100) clamped to [0, 100]: it is
// monotonic in similarity, -1 normalises to 0 and 1 normalises to 100.
func NormalizeScore(similarity float64) int {
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}
	score := int(math.Round(similarity * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
