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

// Ensure PostingStore implements the interface.
var _ driven.PostingStore = (*PostingStore)(nil)

// postingKey is the unique (user, hash) pair.
type postingKey struct {
	userID string
	hash   string
}

// PostingStore is an in-memory implementation of driven.PostingStore.
type PostingStore struct {
	mu       sync.RWMutex
	byKey    map[postingKey]*domain.Posting
	byID     map[string]*domain.Posting
	sequence int // insertion order for stable listings
	order    map[string]int
}

// NewPostingStore creates a new in-memory posting store.
func NewPostingStore() *PostingStore {
	return &PostingStore{
		byKey: make(map[postingKey]*domain.Posting),
		byID:  make(map[string]*domain.Posting),
		order: make(map[string]int),
	}
}

// UpsertBatch idempotently writes a batch for one user. On conflict
// only the freshness fields are updated, mirroring the SQL adapter's
// partial SET clause.
func (s *PostingStore) UpsertBatch(_ context.Context, userID string, postings []domain.NormalizedPosting) ([]domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result := make([]domain.Posting, 0, len(postings))
	for _, np := range postings {
		key := postingKey{userID: userID, hash: np.Hash}
		existing, ok := s.byKey[key]
		if !ok {
			row := &domain.Posting{
				NormalizedPosting: np,
				ID:                uuid.NewString(),
				UserID:            userID,
				Status:            domain.StatusRecommended,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			s.byKey[key] = row
			s.byID[row.ID] = row
			s.sequence++
			s.order[row.ID] = s.sequence
			result = append(result, *row)
			continue
		}

		// Freshness allowlist only; status, notes and embedding are
		// deliberately untouched.
		existing.SourceURL = np.SourceURL
		existing.SalarySnippet = np.SalarySnippet
		existing.SalaryMin = np.SalaryMin
		existing.SalaryMax = np.SalaryMax
		existing.ApplicantsCount = np.ApplicantsCount
		existing.CompanyRating = np.CompanyRating
		existing.CompanyRatingsCount = np.CompanyRatingsCount
		existing.UpdatedAt = now
		result = append(result, *existing)
	}

	return result, nil
}

// Get retrieves a posting by id, scoped to the owning user.
func (s *PostingStore) Get(_ context.Context, userID, postingID string) (*domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.byID[postingID]
	if !ok || row.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

// ListByUser returns the user's postings in insertion order, optionally
// filtered by status.
func (s *PostingStore) ListByUser(_ context.Context, userID string, status domain.Status) ([]domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Posting
	for _, row := range s.byID {
		if row.UserID != userID {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		result = append(result, *row)
	}
	s.sortByInsertion(result)
	return result, nil
}

// ListScorable returns postings with an embedding whose status is in
// the eligible set.
func (s *PostingStore) ListScorable(_ context.Context, userID string, eligible []domain.Status) ([]domain.Posting, error) {
	allowed := make(map[domain.Status]bool, len(eligible))
	for _, st := range eligible {
		allowed[st] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Posting
	for _, row := range s.byID {
		if row.UserID != userID || len(row.Embedding) == 0 || !allowed[row.Status] {
			continue
		}
		result = append(result, *row)
	}
	s.sortByInsertion(result)
	return result, nil
}

// SaveEmbedding stores the embedding vector for a posting.
func (s *PostingStore) SaveEmbedding(_ context.Context, userID, postingID string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[postingID]
	if !ok || row.UserID != userID {
		return domain.ErrNotFound
	}
	row.Embedding = embedding
	row.UpdatedAt = time.Now()
	return nil
}

// Update rewrites a posting's normalised fields after hydration.
func (s *PostingStore) Update(_ context.Context, posting *domain.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[posting.ID]
	if !ok || row.UserID != posting.UserID {
		return domain.ErrNotFound
	}
	row.NormalizedPosting = posting.NormalizedPosting
	row.UpdatedAt = time.Now()
	return nil
}

// SetStatus is a test helper for moving a posting through the pipeline.
func (s *PostingStore) SetStatus(postingID string, status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.byID[postingID]; ok {
		row.Status = status
	}
}

func (s *PostingStore) sortByInsertion(rows []domain.Posting) {
	sort.Slice(rows, func(i, j int) bool {
		return s.order[rows[i].ID] < s.order[rows[j].ID]
	})
}
