package cli

import (
	"context"
	"time"

	"github.com/jobscout-dev/jobscout/internal/adapters/driven/storage/memory"
	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// setupTestServices swaps every wired service for a mock and returns a
// cleanup restoring the originals. Because initApp skips wiring when a
// discoverer is present, commands under test never touch real adapters.
func setupTestServices() func() {
	oldDiscoverer := discoverer
	oldIngestor := ingestor
	oldScorer := scorer
	oldRecommender := recommender
	oldProfiles := profiles
	oldBus := bus

	discoverer = &mockDiscovererCLI{}
	ingestor = nil
	scorer = &mockScorerCLI{}
	recommender = &mockRecommenderCLI{}
	profiles = memory.NewProfileStore()
	bus = nil

	return func() {
		discoverer = oldDiscoverer
		ingestor = oldIngestor
		scorer = oldScorer
		recommender = oldRecommender
		profiles = oldProfiles
		bus = oldBus
	}
}

type mockDiscovererCLI struct {
	lastUser  string
	lastQuery string
	lastOpts  domain.DiscoveryOptions
}

func (m *mockDiscovererCLI) Run(_ context.Context, userID, query string, opts domain.DiscoveryOptions) (*domain.DiscoveryResult, error) {
	m.lastUser = userID
	m.lastQuery = query
	m.lastOpts = opts
	return &domain.DiscoveryResult{
		Postings: []domain.Posting{
			{
				NormalizedPosting: domain.NormalizedPosting{
					Title:    "Senior Go Engineer",
					Company:  "Acme",
					Location: "Berlin, Germany",
					WorkMode: "remote",
				},
				ID:     "p-1",
				UserID: userID,
				Status: domain.StatusRecommended,
			},
		},
		TotalFound: 1,
	}, nil
}

type mockScorerCLI struct{}

func (m *mockScorerCLI) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockScorerCLI) Score(_ context.Context, _, _ string) (*driving.ScoreResult, error) {
	return &driving.ScoreResult{Score: 87, Similarity: 0.87}, nil
}

func (m *mockScorerCLI) BatchScore(_ context.Context, _ string) (int, error) {
	return 3, nil
}

func (m *mockScorerCLI) ProfileChanged(_ context.Context, _ string) (int, error) {
	return 3, nil
}

type mockRecommenderCLI struct{}

func (m *mockRecommenderCLI) RecommendedView(_ context.Context, userID string) ([]driving.RecommendedPosting, error) {
	score := 91
	sim := 0.91
	return []driving.RecommendedPosting{
		{
			Posting: domain.Posting{
				NormalizedPosting: domain.NormalizedPosting{
					Title:    "Staff Platform Engineer",
					Company:  "Initech",
					Location: "Remote",
				},
				ID:     "p-1",
				UserID: userID,
				Status: domain.StatusRecommended,
			},
			Score:      &score,
			Similarity: &sim,
		},
	}, nil
}

func (m *mockRecommenderCLI) SaveCriteria(_ context.Context, criteria domain.Criteria) (*domain.Criteria, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	criteria.ID = "c-1"
	criteria.CreatedAt = time.Now().UTC()
	criteria.UpdatedAt = criteria.CreatedAt
	return &criteria, nil
}

func (m *mockRecommenderCLI) DeleteCriteria(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockRecommenderCLI) ListCriteria(_ context.Context, userID string) ([]domain.Criteria, error) {
	return []domain.Criteria{
		{
			ID:       "c-1",
			UserID:   userID,
			Label:    "Backend roles",
			Keywords: []string{"go", "backend"},
			Active:   true,
		},
	}, nil
}

// Ensure the mocks satisfy the driving ports.
var (
	_ driving.Discoverer  = (*mockDiscovererCLI)(nil)
	_ driving.Scorer      = (*mockScorerCLI)(nil)
	_ driving.Recommender = (*mockRecommenderCLI)(nil)
)
