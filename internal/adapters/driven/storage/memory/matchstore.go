package memory

import (
	"context"
	"sync"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure MatchStore implements the interface.
var _ driven.MatchStore = (*MatchStore)(nil)

// matchKey is the unique (user, posting) pair.
type matchKey struct {
	userID    string
	postingID string
}

// MatchStore is an in-memory implementation of driven.MatchStore.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[matchKey]domain.Match
}

// NewMatchStore creates a new in-memory match store.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		matches: make(map[matchKey]domain.Match),
	}
}

// Upsert creates or updates the match for its (user, posting) pair.
func (s *MatchStore) Upsert(_ context.Context, match domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[matchKey{match.UserID, match.PostingID}] = match
	return nil
}

// UpsertBatch writes many matches in one pass.
func (s *MatchStore) UpsertBatch(_ context.Context, matches []domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		s.matches[matchKey{m.UserID, m.PostingID}] = m
	}
	return nil
}

// Get retrieves the match for a (user, posting) pair.
func (s *MatchStore) Get(_ context.Context, userID, postingID string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[matchKey{userID, postingID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// ListByUser returns all matches for a user.
func (s *MatchStore) ListByUser(_ context.Context, userID string) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Match
	for key, m := range s.matches {
		if key.userID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

// Count is a test helper.
func (s *MatchStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}
