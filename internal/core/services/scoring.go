package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

// Ensure ScoringService implements the interface.
var _ driving.Scorer = (*ScoringService)(nil)

// DefaultEligibleStatuses is the status set whose postings participate
// in batch scoring. Open-ended: deployments may widen it, but
// "recommended" is always scored.
var DefaultEligibleStatuses = []domain.Status{domain.StatusRecommended}

// ScoringService computes 0-100 relevance scores between a candidate
// profile and persisted postings using cosine similarity over their
// embedding vectors.
type ScoringService struct {
	postings driven.PostingStore
	matches  driven.MatchStore
	profiles driven.ProfileStore
	embedder driven.EmbeddingService
	cache    driven.ProfileVectorCache
	eligible []domain.Status
	logger   *zap.Logger
}

// NewScoringService creates a scoring service. The embedder and cache
// are optional: without an embedder Embed returns
// domain.ErrEmbeddingUnavailable, and without a cache every score loads
// the profile from storage.
func NewScoringService(
	postings driven.PostingStore,
	matches driven.MatchStore,
	profiles driven.ProfileStore,
	embedder driven.EmbeddingService,
	cache driven.ProfileVectorCache,
	eligible []domain.Status,
	logger *zap.Logger,
) *ScoringService {
	if len(eligible) == 0 {
		eligible = DefaultEligibleStatuses
	}
	return &ScoringService{
		postings: postings,
		matches:  matches,
		profiles: profiles,
		embedder: embedder,
		cache:    cache,
		eligible: eligible,
		logger:   logger,
	}
}

// Embed converts text to a vector via the embedding capability.
func (s *ScoringService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vec, nil
}

// Score computes and upserts the match for one posting. A user without
// a profile embedding, or a posting without a stored vector, yields
// (nil, nil) - not an error. Mismatched dimensionality fails loudly.
func (s *ScoringService) Score(ctx context.Context, userID, postingID string) (*driving.ScoreResult, error) {
	profileVec, err := s.profileVector(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profileVec == nil {
		return nil, nil
	}

	posting, err := s.postings.Get(ctx, userID, postingID)
	if err != nil {
		return nil, fmt.Errorf("get posting: %w", err)
	}
	if len(posting.Embedding) == 0 {
		return nil, nil
	}

	similarity, err := CosineSimilarity(profileVec, posting.Embedding)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", postingID, err)
	}

	match := domain.Match{
		UserID:       userID,
		PostingID:    postingID,
		Score:        domain.NormalizeScore(similarity),
		Similarity:   similarity,
		CalculatedAt: time.Now(),
	}
	if err := s.matches.Upsert(ctx, match); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return &driving.ScoreResult{Score: match.Score, Similarity: match.Similarity}, nil
}

// BatchScore re-scores every eligible posting with a stored vector for
// the user in one upsert pass. A posting whose vector dimensionality no
// longer matches the profile (e.g. after an embedding-model change) is
// logged and skipped so it never blocks the rest of the batch.
func (s *ScoringService) BatchScore(ctx context.Context, userID string) (int, error) {
	profileVec, err := s.profileVector(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profileVec == nil {
		return 0, nil
	}

	postings, err := s.postings.ListScorable(ctx, userID, s.eligible)
	if err != nil {
		return 0, fmt.Errorf("list scorable postings: %w", err)
	}

	now := time.Now()
	matches := make([]domain.Match, 0, len(postings))
	for i := range postings {
		similarity, err := CosineSimilarity(profileVec, postings[i].Embedding)
		if err != nil {
			s.logger.Error("posting skipped in batch score",
				zap.String("user", userID),
				zap.String("posting", postings[i].ID),
				zap.Error(err))
			continue
		}
		matches = append(matches, domain.Match{
			UserID:       userID,
			PostingID:    postings[i].ID,
			Score:        domain.NormalizeScore(similarity),
			Similarity:   similarity,
			CalculatedAt: now,
		})
	}

	if len(matches) == 0 {
		return 0, nil
	}
	if err := s.matches.UpsertBatch(ctx, matches); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	s.logger.Info("batch score complete",
		zap.String("user", userID),
		zap.Int("scored", len(matches)))
	return len(matches), nil
}

// ProfileChanged drops the cached profile vector and re-scores the
// user's postings against the fresh profile.
func (s *ScoringService) ProfileChanged(ctx context.Context, userID string) (int, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("profile cache invalidation failed",
				zap.String("user", userID),
				zap.Error(err))
		}
	}
	return s.BatchScore(ctx, userID)
}

// profileVector loads the user's profile embedding, consulting the
// cache first. A missing profile or a profile without an embedding
// returns (nil, nil): scoring is simply not possible yet.
func (s *ScoringService) profileVector(ctx context.Context, userID string) ([]float32, error) {
	if s.cache != nil {
		vec, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("profile cache read failed",
				zap.String("user", userID),
				zap.Error(err))
		} else if ok {
			return vec, nil
		}
	}

	profile, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !profile.HasEmbedding() {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, profile.Embedding); err != nil {
			s.logger.Warn("profile cache write failed",
				zap.String("user", userID),
				zap.Error(err))
		}
	}
	return profile.Embedding, nil
}

// CosineSimilarity computes 1 - cosine_distance between two vectors:
// 1.0 means identical direction. Vectors of mismatched dimensionality
// fail with domain.ErrDimensionMismatch rather than silently truncate.
// A zero vector has no direction and yields similarity 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
