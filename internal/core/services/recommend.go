package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Ensure RecommendService implements the interface.
var _ driving.Recommender = (*RecommendService)(nil)

// RecommendService computes the recommended view at read time and
// manages the criteria that gate it.
type RecommendService struct {
	postings driven.PostingStore
	matches  driven.MatchStore
	criteria driven.CriteriaStore
}

// NewRecommendService creates a recommend service.
func NewRecommendService(
	postings driven.PostingStore,
	matches driven.MatchStore,
	criteria driven.CriteriaStore,
) *RecommendService {
	return &RecommendService{
		postings: postings,
		matches:  matches,
		criteria: criteria,
	}
}

// RecommendedView computes the user's recommended postings. The policy
// is strict: a posting's presence in storage with status "recommended"
// is necessary but not sufficient - its title must also contain at
// least one keyword from an active criteria, and zero active criteria
// means an empty view. Scores are merged as display metadata only,
// never used to filter.
func (s *RecommendService) RecommendedView(ctx context.Context, userID string) ([]driving.RecommendedPosting, error) {
	active, err := s.criteria.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active criteria: %w", err)
	}
	if len(active) == 0 {
		return nil, nil
	}

	postings, err := s.postings.ListByUser(ctx, userID, domain.StatusRecommended)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	matches, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	byPosting := make(map[string]domain.Match, len(matches))
	for _, m := range matches {
		byPosting[m.PostingID] = m
	}

	var view []driving.RecommendedPosting
	for i := range postings {
		if !titleMatchesAny(postings[i].Title, active) {
			continue
		}
		row := driving.RecommendedPosting{Posting: postings[i]}
		if m, ok := byPosting[postings[i].ID]; ok {
			score, sim := m.Score, m.Similarity
			row.Score = &score
			row.Similarity = &sim
		}
		view = append(view, row)
	}
	return view, nil
}

// SaveCriteria validates and persists a criteria, stamping identity and
// timestamps for new rows.
func (s *RecommendService) SaveCriteria(ctx context.Context, criteria domain.Criteria) (*domain.Criteria, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	if criteria.ID == "" {
		criteria.ID = uuid.NewString()
		criteria.CreatedAt = now
	}
	criteria.UpdatedAt = now

	if err := s.criteria.Save(ctx, criteria); err != nil {
		return nil, fmt.Errorf("save criteria: %w", err)
	}
	return &criteria, nil
}

// DeleteCriteria removes a user's criteria.
func (s *RecommendService) DeleteCriteria(ctx context.Context, userID, criteriaID string) error {
	if err := s.criteria.Delete(ctx, userID, criteriaID); err != nil {
		return fmt.Errorf("delete criteria: %w", err)
	}
	return nil
}

// ListCriteria returns all criteria for a user.
func (s *RecommendService) ListCriteria(ctx context.Context, userID string) ([]domain.Criteria, error) {
	criteria, err := s.criteria.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	return criteria, nil
}

// titleMatchesAny reports whether any active criteria keyword appears
// in the title.
func titleMatchesAny(title string, active []domain.Criteria) bool {
	for i := range active {
		if active[i].MatchesTitle(title) {
			return true
		}
	}
	return false
}
