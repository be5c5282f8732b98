package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// hydrateTimeout bounds the detached embedding regeneration after a
// successful hydration.
const hydrateTimeout = 2 * time.Minute

// IngestService deduplicates and idempotently persists normalised
// postings, and deep-enriches them via the hydrator capability.
type IngestService struct {
	postings driven.PostingStore
	hydrator driven.Hydrator
	embedder driven.EmbeddingService
	logger   *zap.Logger
}

// NewIngestService creates an ingest service. The hydrator and embedder
// are optional: without a hydrator Hydrate only evaluates the guard,
// and without an embedder the post-hydration embedding refresh is
// skipped.
func NewIngestService(
	postings driven.PostingStore,
	hydrator driven.Hydrator,
	embedder driven.EmbeddingService,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		postings: postings,
		hydrator: hydrator,
		embedder: embedder,
		logger:   logger,
	}
}

// Persist maps each posting to the persisted shape, dedups the batch by
// hash (last write wins) and performs a single idempotent batch upsert
// keyed on (user, hash). Returns the rows now current for the batch
// hashes. On storage failure it returns an empty slice and the error;
// re-running is always safe because the write is a pure upsert.
func (s *IngestService) Persist(ctx context.Context, userID string, batch []domain.NormalizedPosting) ([]domain.Posting, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if len(batch) == 0 {
		return nil, nil
	}

	deduped := dedupeByHash(normalizeBatch(batch))

	rows, err := s.postings.UpsertBatch(ctx, userID, deduped)
	if err != nil {
		s.logger.Error("batch upsert failed",
			zap.String("user", userID),
			zap.Int("batch", len(deduped)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	s.logger.Info("batch persisted",
		zap.String("user", userID),
		zap.Int("incoming", len(batch)),
		zap.Int("deduped", len(deduped)),
		zap.Int("current", len(rows)))
	return rows, nil
}

// Hydrate deep-enriches a stored posting. The guard makes it an
// idempotent no-op for postings that already carry both a description
// and technographics. Only non-empty hydrator fields are merged - a
// present field is never overwritten with an absent one. On success the
// posting embedding is regenerated in a detached goroutine whose
// failures are logged, by design never surfaced to the caller.
func (s *IngestService) Hydrate(ctx context.Context, userID, postingID string) (bool, error) {
	posting, err := s.postings.Get(ctx, userID, postingID)
	if err != nil {
		return false, fmt.Errorf("get posting: %w", err)
	}

	if posting.Hydrated() {
		return true, nil
	}
	if s.hydrator == nil {
		return false, nil
	}

	deep, err := s.hydrator.Hydrate(ctx, posting.SourceID)
	if err != nil {
		return false, fmt.Errorf("hydrate %s: %w", posting.SourceID, err)
	}
	if deep == nil {
		return false, nil
	}

	mergePosting(&posting.NormalizedPosting, deep)
	if err := s.postings.Update(ctx, posting); err != nil {
		return false, fmt.Errorf("save hydrated posting: %w", err)
	}

	s.refreshEmbeddingAsync(userID, postingID, posting.EmbeddingText())
	return true, nil
}

// refreshEmbeddingAsync regenerates a posting embedding without the
// caller awaiting it.
func (s *IngestService) refreshEmbeddingAsync(userID, postingID, text string) {
	if s.embedder == nil || text == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
		defer cancel()

		vec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			s.logger.Warn("post-hydration embedding failed",
				zap.String("posting", postingID),
				zap.Error(err))
			return
		}
		if err := s.postings.SaveEmbedding(ctx, userID, postingID, vec); err != nil {
			s.logger.Warn("saving post-hydration embedding failed",
				zap.String("posting", postingID),
				zap.Error(err))
		}
	}()
}

// normalizeBatch applies the ingestion defaults to every posting:
// absent enums get their documented defaults, non-finite numerics are
// coerced to absent, and the content hash is filled in when the
// provider did not supply one.
func normalizeBatch(batch []domain.NormalizedPosting) []domain.NormalizedPosting {
	out := make([]domain.NormalizedPosting, len(batch))
	for i, p := range batch {
		if p.WorkMode == "" {
			p.WorkMode = domain.WorkModeUnknown
		}
		if p.ExperienceLevel == "" {
			p.ExperienceLevel = domain.ExperienceLevelNotSpecified
		}
		if p.Currency == "" {
			p.Currency = domain.CurrencyDefault
		}
		p.SalaryMin = finiteOrNil(p.SalaryMin)
		p.SalaryMax = finiteOrNil(p.SalaryMax)
		p.CompanyRating = finiteOrNil(p.CompanyRating)
		if p.Hash == "" {
			p.Hash = domain.ContentHash(p.Title, p.Company, p.Location, p.City)
		}
		out[i] = p
	}
	return out
}

// finiteOrNil coerces NaN and infinite values to absent rather than
// letting them poison the store.
func finiteOrNil(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// dedupeByHash collapses intra-batch duplicates, keeping first-seen
// order with last-write-wins contents.
func dedupeByHash(batch []domain.NormalizedPosting) []domain.NormalizedPosting {
	index := make(map[string]int, len(batch))
	out := make([]domain.NormalizedPosting, 0, len(batch))
	for _, p := range batch {
		if i, seen := index[p.Hash]; seen {
			out[i] = p
			continue
		}
		index[p.Hash] = len(out)
		out = append(out, p)
	}
	return out
}

// mergePosting copies non-empty fields from src into dst. Lists replace
// only when src has entries; scalars replace only when src is non-zero.
func mergePosting(dst, src *domain.NormalizedPosting) {
	mergeString(&dst.Description, src.Description)
	mergeString(&dst.DescriptionHTML, src.DescriptionHTML)
	mergeString(&dst.Snippet, src.Snippet)
	mergeString(&dst.ApplyURL, src.ApplyURL)
	mergeString(&dst.City, src.City)
	mergeString(&dst.State, src.State)
	mergeString(&dst.Country, src.Country)
	mergeString(&dst.SalarySnippet, src.SalarySnippet)
	mergeString(&dst.SalaryUnit, src.SalaryUnit)
	mergeString(&dst.CompanyWebsite, src.CompanyWebsite)
	mergeString(&dst.CompanyIndustry, src.CompanyIndustry)
	mergeString(&dst.CompanyLogo, src.CompanyLogo)
	mergeString(&dst.CompanyRevenue, src.CompanyRevenue)
	mergeString(&dst.CompanyCEO, src.CompanyCEO)
	mergeString(&dst.CompanyDescription, src.CompanyDescription)

	if len(src.Skills) > 0 {
		dst.Skills = src.Skills
	}
	if len(src.Benefits) > 0 {
		dst.Benefits = src.Benefits
	}
	if len(src.Qualifications) > 0 {
		dst.Qualifications = src.Qualifications
	}
	if len(src.Responsibilities) > 0 {
		dst.Responsibilities = src.Responsibilities
	}
	if len(src.Technographics) > 0 {
		dst.Technographics = src.Technographics
	}

	if v := finiteOrNil(src.SalaryMin); v != nil {
		dst.SalaryMin = v
	}
	if v := finiteOrNil(src.SalaryMax); v != nil {
		dst.SalaryMax = v
	}
	if src.ApplicantsCount != nil {
		dst.ApplicantsCount = src.ApplicantsCount
	}
	if src.CompanyEmployees != nil {
		dst.CompanyEmployees = src.CompanyEmployees
	}
	if v := finiteOrNil(src.CompanyRating); v != nil {
		dst.CompanyRating = v
	}
	if src.CompanyRatingsCount != nil {
		dst.CompanyRatingsCount = src.CompanyRatingsCount
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
