package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// ProfileStore persists candidate profiles, one per user.
type ProfileStore interface {
	// Save creates or updates a profile.
	Save(ctx context.Context, profile domain.Profile) error

	// Get retrieves a user's profile.
	// Returns domain.ErrNotFound when the user has no profile yet.
	Get(ctx context.Context, userID string) (*domain.Profile, error)

	// ListUserIDs returns the ids of every user with a profile.
	// Feeds the full-rescan subscribers and startup repair.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// ProfileVectorCache is an optional read-through cache for profile
// embeddings, consulted by the scorer before hitting the profile store.
// When nil, every score loads the profile from storage.
type ProfileVectorCache interface {
	// Get returns the cached vector for a user, or ok=false on miss.
	Get(ctx context.Context, userID string) (vec []float32, ok bool, err error)

	// Set stores the vector for a user.
	Set(ctx context.Context, userID string, vec []float32) error

	// Invalidate drops the cached vector after a profile edit.
	Invalidate(ctx context.Context, userID string) error
}
