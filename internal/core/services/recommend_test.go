package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-dev/jobscout/internal/adapters/driven/storage/memory"
	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

type recommendFixture struct {
	svc      *RecommendService
	postings *memory.PostingStore
	matches  *memory.MatchStore
	criteria *memory.CriteriaStore
}

func newRecommendFixture(t *testing.T) *recommendFixture {
	t.Helper()
	f := &recommendFixture{
		postings: memory.NewPostingStore(),
		matches:  memory.NewMatchStore(),
		criteria: memory.NewCriteriaStore(),
	}
	f.svc = NewRecommendService(f.postings, f.matches, f.criteria)
	return f
}

func (f *recommendFixture) seedPosting(t *testing.T, userID, title string) string {
	t.Helper()
	rows, err := f.postings.UpsertBatch(context.Background(), userID, []domain.NormalizedPosting{
		{Title: title, Company: "Acme", Hash: domain.ContentHash(title, "Acme", "", "")},
	})
	require.NoError(t, err)
	return rows[0].ID
}

func (f *recommendFixture) seedCriteria(t *testing.T, userID string, keywords ...string) {
	t.Helper()
	_, err := f.svc.SaveCriteria(context.Background(), domain.Criteria{
		UserID:   userID,
		Keywords: keywords,
		Active:   true,
	})
	require.NoError(t, err)
}

// TestRecommendedView_NoActiveCriteria tests the strict policy: no
// active criteria means an empty view, regardless of stored postings.
func TestRecommendedView_NoActiveCriteria(t *testing.T) {
	f := newRecommendFixture(t)
	f.seedPosting(t, "u1", "Go Developer")

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, view)
}

// TestRecommendedView_KeywordGate tests case-insensitive substring
// matching against the title.
func TestRecommendedView_KeywordGate(t *testing.T) {
	f := newRecommendFixture(t)
	f.seedCriteria(t, "u1", "data scientist")
	f.seedPosting(t, "u1", "Senior Data Scientist")
	f.seedPosting(t, "u1", "Product Manager")

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, "Senior Data Scientist", view[0].Posting.Title)
}

// TestRecommendedView_StatusGate tests that only recommended-status
// postings participate.
func TestRecommendedView_StatusGate(t *testing.T) {
	f := newRecommendFixture(t)
	f.seedCriteria(t, "u1", "engineer")
	f.seedPosting(t, "u1", "Platform Engineer")
	applied := f.seedPosting(t, "u1", "Backend Engineer")
	f.postings.SetStatus(applied, domain.StatusApplied)

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, "Platform Engineer", view[0].Posting.Title)
}

// TestRecommendedView_ScoreIsMetadataOnly tests that unscored postings
// still appear, carrying nil score fields.
func TestRecommendedView_ScoreIsMetadataOnly(t *testing.T) {
	f := newRecommendFixture(t)
	f.seedCriteria(t, "u1", "engineer")
	scored := f.seedPosting(t, "u1", "Platform Engineer")
	f.seedPosting(t, "u1", "Backend Engineer")
	require.NoError(t, f.matches.Upsert(context.Background(), domain.Match{
		UserID:       "u1",
		PostingID:    scored,
		Score:        87,
		Similarity:   0.87,
		CalculatedAt: time.Now(),
	}))

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view, 2)

	byID := map[string]int{}
	for i, row := range view {
		byID[row.Posting.ID] = i
	}
	scoredRow := view[byID[scored]]
	require.NotNil(t, scoredRow.Score)
	assert.Equal(t, 87, *scoredRow.Score)
	require.NotNil(t, scoredRow.Similarity)
	assert.InDelta(t, 0.87, *scoredRow.Similarity, 1e-9)

	for id, i := range byID {
		if id != scored {
			assert.Nil(t, view[i].Score)
			assert.Nil(t, view[i].Similarity)
		}
	}
}

// TestRecommendedView_AnyActiveCriteriaSuffices tests the OR semantics
// across multiple active criteria.
func TestRecommendedView_AnyActiveCriteriaSuffices(t *testing.T) {
	f := newRecommendFixture(t)
	f.seedCriteria(t, "u1", "sre")
	f.seedCriteria(t, "u1", "golang")
	f.seedPosting(t, "u1", "Golang Backend Developer")

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, view, 1)
}

// TestSaveCriteria_StampsIdentity tests ID and timestamp assignment for
// new criteria.
func TestSaveCriteria_StampsIdentity(t *testing.T) {
	f := newRecommendFixture(t)

	saved, err := f.svc.SaveCriteria(context.Background(), domain.Criteria{
		UserID:   "u1",
		Label:    "Backend roles",
		Keywords: []string{"go", "backend"},
		Active:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())
}

// TestSaveCriteria_RejectsBlankKeywords tests validation.
func TestSaveCriteria_RejectsBlankKeywords(t *testing.T) {
	f := newRecommendFixture(t)

	_, err := f.svc.SaveCriteria(context.Background(), domain.Criteria{
		UserID:   "u1",
		Keywords: []string{"go", "  "},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestDeleteCriteria_RemovesFromView tests that deleting the only
// active criteria empties the recommended view.
func TestDeleteCriteria_RemovesFromView(t *testing.T) {
	f := newRecommendFixture(t)
	saved, err := f.svc.SaveCriteria(context.Background(), domain.Criteria{
		UserID:   "u1",
		Keywords: []string{"engineer"},
		Active:   true,
	})
	require.NoError(t, err)
	f.seedPosting(t, "u1", "Platform Engineer")

	require.NoError(t, f.svc.DeleteCriteria(context.Background(), "u1", saved.ID))

	view, err := f.svc.RecommendedView(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, view)
}
