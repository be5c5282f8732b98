package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure CriteriaStore implements the interface.
var _ driven.CriteriaStore = (*CriteriaStore)(nil)

// CriteriaStore is an in-memory implementation of driven.CriteriaStore.
type CriteriaStore struct {
	mu       sync.RWMutex
	criteria map[string]domain.Criteria
}

// NewCriteriaStore creates a new in-memory criteria store.
func NewCriteriaStore() *CriteriaStore {
	return &CriteriaStore{
		criteria: make(map[string]domain.Criteria),
	}
}

// Save creates or updates a criteria.
func (s *CriteriaStore) Save(_ context.Context, criteria domain.Criteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria[criteria.ID] = criteria
	return nil
}

// Get retrieves a criteria by id, scoped to the owning user.
func (s *CriteriaStore) Get(_ context.Context, userID, criteriaID string) (*domain.Criteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.criteria[criteriaID]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// Delete removes a criteria.
func (s *CriteriaStore) Delete(_ context.Context, userID, criteriaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.criteria[criteriaID]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.criteria, criteriaID)
	return nil
}

// ListByUser returns all of a user's criteria.
func (s *CriteriaStore) ListByUser(_ context.Context, userID string) ([]domain.Criteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Criteria
	for _, c := range s.criteria {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sortCriteria(result)
	return result, nil
}

// ListActive returns the user's active criteria only.
func (s *CriteriaStore) ListActive(_ context.Context, userID string) ([]domain.Criteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Criteria
	for _, c := range s.criteria {
		if c.UserID == userID && c.Active {
			result = append(result, c)
		}
	}
	sortCriteria(result)
	return result, nil
}

// ListUsersWithActive returns every user holding at least one active
// criteria.
func (s *CriteriaStore) ListUsersWithActive(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var result []string
	for _, c := range s.criteria {
		if c.Active && !seen[c.UserID] {
			seen[c.UserID] = true
			result = append(result, c.UserID)
		}
	}
	sort.Strings(result)
	return result, nil
}

func sortCriteria(criteria []domain.Criteria) {
	sort.Slice(criteria, func(i, j int) bool {
		return criteria[i].ID < criteria[j].ID
	})
}
