package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure AttemptStore implements the interface.
var _ driven.AttemptStore = (*AttemptStore)(nil)

// AttemptStore is an in-memory implementation of driven.AttemptStore.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]domain.IngestionAttempt
}

// NewAttemptStore creates a new in-memory attempt store.
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		attempts: make(map[string]domain.IngestionAttempt),
	}
}

// Create opens an in_progress attempt row.
func (s *AttemptStore) Create(_ context.Context, provider, query string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.attempts[id] = domain.IngestionAttempt{
		ID:        id,
		Provider:  provider,
		Query:     query,
		Status:    domain.AttemptInProgress,
		StartedAt: time.Now(),
	}
	return id, nil
}

// Close transitions the attempt to its final state.
func (s *AttemptStore) Close(_ context.Context, attemptID string, status domain.AttemptStatus, found, saved int, errText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attempts[attemptID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	a.Status = status
	a.Found = found
	a.Saved = saved
	a.Error = errText
	a.CompletedAt = &now
	s.attempts[attemptID] = a
	return nil
}

// List returns attempts newest first.
func (s *AttemptStore) List(_ context.Context, limit int) ([]domain.IngestionAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.IngestionAttempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
