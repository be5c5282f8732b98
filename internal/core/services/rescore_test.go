package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/adapters/driven/storage/memory"
	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

type rescoreFixture struct {
	rescorer *Rescorer
	scoring  *scoringFixture
}

func newRescoreFixture(t *testing.T) *rescoreFixture {
	t.Helper()
	scoring := newScoringFixture(t)
	return &rescoreFixture{
		rescorer: NewRescorer(scoring.svc, scoring.profiles, zap.NewNop()),
		scoring:  scoring,
	}
}

// TestOnProfileUpdated_RescoresAllPostings tests that a profile edit
// refreshes every eligible match for that user.
func TestOnProfileUpdated_RescoresAllPostings(t *testing.T) {
	f := newRescoreFixture(t)
	f.scoring.seedProfile(t, "u1", []float32{1, 0})
	for i := 0; i < 10; i++ {
		f.scoring.seedPosting(t, "u1", titleN(i), []float32{1, 0})
	}

	f.rescorer.onProfileUpdated(context.Background(), domain.ProfileUpdated{UserID: "u1"})

	assert.Equal(t, 10, f.scoring.matches.Count())
}

// TestOnPostingsIngested_RescansEveryProfile tests that an ingest for
// one user refreshes matches for all users with profiles.
func TestOnPostingsIngested_RescansEveryProfile(t *testing.T) {
	f := newRescoreFixture(t)
	f.scoring.seedProfile(t, "u1", []float32{1, 0})
	f.scoring.seedProfile(t, "u2", []float32{0, 1})
	f.scoring.seedPosting(t, "u1", "Go Developer", []float32{1, 0})
	f.scoring.seedPosting(t, "u2", "SRE", []float32{0, 1})

	f.rescorer.onPostingsIngested(context.Background(), domain.PostingsIngested{
		UserID:     "u1",
		PostingIDs: []string{"irrelevant"},
	})

	assert.Equal(t, 2, f.scoring.matches.Count())
}

// TestRepairAll tests the startup repair pass.
func TestRepairAll(t *testing.T) {
	f := newRescoreFixture(t)
	f.scoring.seedProfile(t, "u1", []float32{1, 0})
	f.scoring.seedPosting(t, "u1", "Go Developer", []float32{0.5, 0.5})

	f.rescorer.RepairAll(context.Background())

	match, err := f.scoring.matches.Get(context.Background(), "u1", firstPostingID(t, f.scoring.postings))
	require.NoError(t, err)
	assert.Greater(t, match.Score, 0)
}

// TestOnProfileUpdated_IgnoresWrongEventType tests defensive handling
// of a mismatched payload.
func TestOnProfileUpdated_IgnoresWrongEventType(t *testing.T) {
	f := newRescoreFixture(t)
	f.scoring.seedProfile(t, "u1", []float32{1, 0})
	f.scoring.seedPosting(t, "u1", "Go Developer", []float32{1, 0})

	f.rescorer.onProfileUpdated(context.Background(), domain.PostingsIngested{UserID: "u1"})

	assert.Zero(t, f.scoring.matches.Count())
}

func titleN(i int) string {
	return "Go Developer " + string(rune('A'+i))
}

func firstPostingID(t *testing.T, store *memory.PostingStore) string {
	t.Helper()
	rows, err := store.ListByUser(context.Background(), "u1", "")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	return rows[0].ID
}
