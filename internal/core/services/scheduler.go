package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Scheduler periodically runs discovery for every user holding at least
// one active criteria, using the distinct criteria keywords as queries.
type Scheduler struct {
	cron       *cron.Cron
	criteria   driven.CriteriaStore
	discoverer driving.Discoverer
	spec       string
	logger     *zap.Logger
}

// NewScheduler creates a scheduler that fires every intervalHours hours.
func NewScheduler(
	criteria driven.CriteriaStore,
	discoverer driving.Discoverer,
	intervalHours int,
	logger *zap.Logger,
) *Scheduler {
	if intervalHours < 1 {
		intervalHours = 6
	}
	return &Scheduler{
		cron:       cron.New(),
		criteria:   criteria,
		discoverer: discoverer,
		spec:       fmt.Sprintf("@every %dh", intervalHours),
		logger:     logger,
	}
}

// Start registers the cron entry and starts the scheduler. One cycle
// runs immediately so new deployments do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron add: %w", err)
	}

	s.cron.Start()
	s.logger.Info("discovery scheduler started", zap.String("spec", s.spec))

	go s.runCycle(ctx)
	return nil
}

// Stop shuts the scheduler down, waiting for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("discovery scheduler stopped")
}

// runCycle executes one discovery pass for every user with active
// criteria. Per-user failures are logged and never abort the cycle.
func (s *Scheduler) runCycle(ctx context.Context) {
	userIDs, err := s.criteria.ListUsersWithActive(ctx)
	if err != nil {
		s.logger.Error("scheduled cycle aborted: listing users failed", zap.Error(err))
		return
	}
	if len(userIDs) == 0 {
		s.logger.Info("scheduled cycle skipped: no active criteria")
		return
	}

	for _, userID := range userIDs {
		s.runForUser(ctx, userID)
	}
}

func (s *Scheduler) runForUser(ctx context.Context, userID string) {
	active, err := s.criteria.ListActive(ctx, userID)
	if err != nil {
		s.logger.Error("scheduled discovery skipped",
			zap.String("user", userID),
			zap.Error(err))
		return
	}

	for _, query := range DistinctQueries(active) {
		result, err := s.discoverer.Run(ctx, userID, query, domain.DiscoveryOptions{})
		if err != nil {
			s.logger.Error("scheduled discovery failed",
				zap.String("user", userID),
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		s.logger.Info("scheduled discovery complete",
			zap.String("user", userID),
			zap.String("query", query),
			zap.Int("persisted", len(result.Postings)),
			zap.Int("errors", len(result.Errors)))
	}
}
