package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Ensure DiscoveryService implements the interface.
var _ driving.Discoverer = (*DiscoveryService)(nil)

// Default retry policy for provider fetches.
const (
	DefaultMaxRetries   = 2
	DefaultBaseDelay    = 2 * time.Second
	DefaultFetchTimeout = 30 * time.Second
)

// DiscoveryConfig tunes the orchestrator's retry policy.
type DiscoveryConfig struct {
	// MaxRetries is how many times a failed fetch is retried after the
	// first invocation. A provider that always fails is invoked
	// exactly 1+MaxRetries times.
	MaxRetries int

	// BaseDelay scales the linear backoff: retry n sleeps n*BaseDelay.
	BaseDelay time.Duration

	// FetchTimeout bounds each provider invocation when the caller
	// does not supply one.
	FetchTimeout time.Duration
}

// withDefaults fills unset fields.
func (c DiscoveryConfig) withDefaults() DiscoveryConfig {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return c
}

// providerOutcome carries one provider's result to the merge step.
type providerOutcome struct {
	provider  string
	attemptID string
	result    *domain.IngestionResult
	err       error
}

// DiscoveryService orchestrates one query across all enabled providers:
// bounded retries with linear backoff per provider, one ingestion
// attempt row per provider invocation, one batch persist per run, and a
// PostingsIngested event when anything was written.
type DiscoveryService struct {
	registry driven.ProviderRegistry
	attempts driven.AttemptStore
	ingestor driving.Ingestor
	bus      driven.EventBus
	cfg      DiscoveryConfig
	logger   *zap.Logger
}

// NewDiscoveryService creates a discovery orchestrator. The bus is
// optional; without it ingestion events are simply not published.
func NewDiscoveryService(
	registry driven.ProviderRegistry,
	attempts driven.AttemptStore,
	ingestor driving.Ingestor,
	bus driven.EventBus,
	cfg DiscoveryConfig,
	logger *zap.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		registry: registry,
		attempts: attempts,
		ingestor: ingestor,
		bus:      bus,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Run executes the query against every enabled provider concurrently.
// Failures in one provider never abort others: a provider exceeding its
// retry budget contributes zero postings and an error string, and the
// run as a whole still succeeds with whatever the rest produced. All
// collected postings are handed to the ingestor in one batch per run,
// so within-run duplicates across providers collapse before any write.
func (s *DiscoveryService) Run(ctx context.Context, userID, query string, opts domain.DiscoveryOptions) (*domain.DiscoveryResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	providers := s.registry.Enabled()
	if len(providers) == 0 {
		return nil, domain.ErrNoProviders
	}
	if opts.Timeout <= 0 {
		opts.Timeout = s.cfg.FetchTimeout
	}

	s.logger.Info("discovery run started",
		zap.String("user", userID),
		zap.String("query", query),
		zap.Int("providers", len(providers)))

	outcomes := make([]providerOutcome, len(providers))
	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p driven.SourceProvider) {
			defer wg.Done()
			outcomes[i] = s.fetchWithRetry(ctx, p, query, opts)
		}(i, p)
	}
	wg.Wait()

	result := &domain.DiscoveryResult{}
	var batch []domain.NormalizedPosting
	for _, o := range outcomes {
		if o.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", o.provider, o.err))
			continue
		}
		result.TotalFound += o.result.TotalFound
		for _, msg := range o.result.Errors {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", o.provider, msg))
		}
		batch = append(batch, o.result.Postings...)
	}

	persisted, err := s.ingestor.Persist(ctx, userID, batch)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("persist: %v", err))
	}
	result.Postings = persisted

	s.closeAttempts(ctx, outcomes, persisted)

	if s.bus != nil && len(persisted) > 0 {
		ids := make([]string, len(persisted))
		for i, p := range persisted {
			ids[i] = p.ID
		}
		s.bus.Publish(ctx, domain.PostingsIngested{UserID: userID, PostingIDs: ids})
	}

	s.logger.Info("discovery run complete",
		zap.String("user", userID),
		zap.Int("found", result.TotalFound),
		zap.Int("persisted", len(persisted)),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// fetchWithRetry runs one provider's bounded-retry loop. It opens the
// attempt row before the first try; success attempts are closed later,
// once the batch persist has produced saved counts, while exhausted
// failures are closed here with the last error.
func (s *DiscoveryService) fetchWithRetry(ctx context.Context, p driven.SourceProvider, query string, opts domain.DiscoveryOptions) providerOutcome {
	out := providerOutcome{provider: p.Name()}

	attemptID, err := s.attempts.Create(ctx, p.Name(), query)
	if err != nil {
		// The attempt log is observational; losing a row must not
		// block the fetch itself.
		s.logger.Warn("attempt row not recorded",
			zap.String("provider", p.Name()),
			zap.Error(err))
	}
	out.attemptID = attemptID

	var lastErr error
retry:
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			// Linear backoff: retry n waits n*BaseDelay.
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				break retry
			case <-time.After(time.Duration(attempt) * s.cfg.BaseDelay):
			}
		}

		fetchCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		res, err := p.Fetch(fetchCtx, query, opts)
		cancel()
		if err == nil {
			out.result = res
			return out
		}

		lastErr = err
		s.logger.Warn("provider fetch failed",
			zap.String("provider", p.Name()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	out.err = lastErr
	if attemptID != "" {
		if err := s.attempts.Close(ctx, attemptID, domain.AttemptFailure, 0, 0, lastErr.Error()); err != nil {
			s.logger.Warn("attempt row not closed", zap.String("provider", p.Name()), zap.Error(err))
		}
	}
	return out
}

// closeAttempts finalises the success attempt rows after the batch
// persist, attributing saved counts to each provider by hash.
func (s *DiscoveryService) closeAttempts(ctx context.Context, outcomes []providerOutcome, persisted []domain.Posting) {
	saved := make(map[string]bool, len(persisted))
	for _, p := range persisted {
		saved[p.Hash] = true
	}

	for _, o := range outcomes {
		if o.err != nil || o.attemptID == "" {
			continue
		}
		count := 0
		for _, np := range o.result.Postings {
			hash := np.Hash
			if hash == "" {
				hash = domain.ContentHash(np.Title, np.Company, np.Location, np.City)
			}
			if saved[hash] {
				count++
			}
		}
		if err := s.attempts.Close(ctx, o.attemptID, domain.AttemptSuccess, o.result.TotalFound, count, ""); err != nil {
			s.logger.Warn("attempt row not closed", zap.String("provider", o.provider), zap.Error(err))
		}
	}
}

// DistinctQueries extracts the deduplicated, order-stable set of
// keywords from a user's active criteria. These are the query strings
// scheduled discovery runs for the user.
func DistinctQueries(criteria []domain.Criteria) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range criteria {
		if !c.Active {
			continue
		}
		for _, kw := range c.Keywords {
			kw = strings.TrimSpace(kw)
			key := strings.ToLower(kw)
			if kw == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, kw)
		}
	}
	sort.Strings(out)
	return out
}
