package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Rescorer wires the event bus to the scorer. Both subscriptions are
// idempotent pure upserts, so re-scoring the same user twice in quick
// succession is safe to interleave.
//
// On PostingsIngested every known profile is re-scored, not just the
// ingesting user's: any profile could match a new posting. This full
// rescan trades efficiency for correctness; see DESIGN.md for the
// scaling discussion.
type Rescorer struct {
	scorer   driving.Scorer
	profiles driven.ProfileStore
	logger   *zap.Logger
}

// NewRescorer creates a rescorer.
func NewRescorer(scorer driving.Scorer, profiles driven.ProfileStore, logger *zap.Logger) *Rescorer {
	return &Rescorer{
		scorer:   scorer,
		profiles: profiles,
		logger:   logger,
	}
}

// Register subscribes the rescorer to both event kinds on the bus.
func (r *Rescorer) Register(bus driven.EventBus) {
	bus.Subscribe(domain.KindProfileUpdated, r.onProfileUpdated)
	bus.Subscribe(domain.KindPostingsIngested, r.onPostingsIngested)
}

// onProfileUpdated re-scores the edited profile's postings only.
func (r *Rescorer) onProfileUpdated(ctx context.Context, evt domain.Event) {
	e, ok := evt.(domain.ProfileUpdated)
	if !ok {
		return
	}

	count, err := r.scorer.ProfileChanged(ctx, e.UserID)
	if err != nil {
		r.logger.Error("re-score after profile update failed",
			zap.String("user", e.UserID),
			zap.Error(err))
		return
	}
	r.logger.Info("re-scored after profile update",
		zap.String("user", e.UserID),
		zap.Int("matches", count))
}

// onPostingsIngested re-scores every known profile.
func (r *Rescorer) onPostingsIngested(ctx context.Context, evt domain.Event) {
	if _, ok := evt.(domain.PostingsIngested); !ok {
		return
	}
	r.rescanAll(ctx, "postings ingested")
}

// RepairAll runs the same full rescan once at process start, repairing
// scores that went stale while the process was not running, e.g. after
// an embedding-model change.
func (r *Rescorer) RepairAll(ctx context.Context) {
	r.rescanAll(ctx, "startup repair")
}

func (r *Rescorer) rescanAll(ctx context.Context, reason string) {
	userIDs, err := r.profiles.ListUserIDs(ctx)
	if err != nil {
		r.logger.Error("full rescan aborted: listing profiles failed",
			zap.String("reason", reason),
			zap.Error(err))
		return
	}

	total := 0
	for _, userID := range userIDs {
		count, err := r.scorer.BatchScore(ctx, userID)
		if err != nil {
			// One user's failure never blocks the rest of the rescan.
			r.logger.Error("batch score failed during rescan",
				zap.String("user", userID),
				zap.Error(err))
			continue
		}
		total += count
	}

	r.logger.Info("full rescan complete",
		zap.String("reason", reason),
		zap.Int("profiles", len(userIDs)),
		zap.Int("matches", total))
}
