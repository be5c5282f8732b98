package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// PostingStore persists user-owned postings. (UserID, Hash) is unique.
type PostingStore interface {
	// UpsertBatch idempotently writes a deduplicated batch for one user
	// in a single atomic operation keyed on (user_id, hash). On
	// conflict only the freshness allowlist is updated - source URL,
	// salary snippet and bounds, applicants count, company rating and
	// ratings count, updated timestamp - so a re-discovered posting
	// never resets the user's pipeline progress. Implementations must
	// rely on the storage engine's native conflict resolution rather
	// than read-then-write. Returns the rows now current for the
	// given hashes, inserted or updated.
	UpsertBatch(ctx context.Context, userID string, postings []domain.NormalizedPosting) ([]domain.Posting, error)

	// Get retrieves a posting by id, scoped to the owning user.
	// Returns domain.ErrNotFound when the row does not exist or
	// belongs to someone else.
	Get(ctx context.Context, userID, postingID string) (*domain.Posting, error)

	// ListByUser returns the user's postings, optionally filtered by
	// status. An empty status means all statuses.
	ListByUser(ctx context.Context, userID string, status domain.Status) ([]domain.Posting, error)

	// ListScorable returns the user's postings that carry an embedding
	// and whose status is in the eligible set.
	ListScorable(ctx context.Context, userID string, eligible []domain.Status) ([]domain.Posting, error)

	// SaveEmbedding stores the embedding vector for a posting.
	SaveEmbedding(ctx context.Context, userID, postingID string, embedding []float32) error

	// Update rewrites a posting's normalised fields after hydration.
	// Status, notes and embedding are not touched.
	Update(ctx context.Context, posting *domain.Posting) error
}
