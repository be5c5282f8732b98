package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure MatchStore implements the interface.
var _ driven.MatchStore = (*MatchStore)(nil)

// MatchStore persists relevance scores in the matches table, keyed on
// (user_id, posting_id).
type MatchStore struct {
	pool *pgxpool.Pool
}

// NewMatchStore creates a match store on an existing pool.
func NewMatchStore(pool *pgxpool.Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

const upsertMatchSQL = `INSERT INTO matches (user_id, posting_id, score, similarity, gap_analysis, calculated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, posting_id) DO UPDATE SET
	score         = EXCLUDED.score,
	similarity    = EXCLUDED.similarity,
	gap_analysis  = COALESCE(EXCLUDED.gap_analysis, matches.gap_analysis),
	calculated_at = EXCLUDED.calculated_at`

// Upsert creates or refreshes one match.
func (s *MatchStore) Upsert(ctx context.Context, match domain.Match) error {
	_, err := s.pool.Exec(ctx, upsertMatchSQL,
		match.UserID, match.PostingID, match.Score, match.Similarity,
		[]byte(match.GapAnalysis), match.CalculatedAt)
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

// UpsertBatch writes many matches in one batched round trip.
func (s *MatchStore) UpsertBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range matches {
		batch.Queue(upsertMatchSQL,
			m.UserID, m.PostingID, m.Score, m.Similarity,
			[]byte(m.GapAnalysis), m.CalculatedAt)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert match batch: %w", err)
	}
	return nil
}

// Get retrieves the match for a (user, posting) pair.
func (s *MatchStore) Get(ctx context.Context, userID, postingID string) (*domain.Match, error) {
	var (
		m   domain.Match
		gap []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, posting_id, score, similarity, gap_analysis, calculated_at
		 FROM matches WHERE user_id = $1 AND posting_id = $2`,
		userID, postingID,
	).Scan(&m.UserID, &m.PostingID, &m.Score, &m.Similarity, &gap, &m.CalculatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	m.GapAnalysis = gap
	return &m, nil
}

// ListByUser returns all of a user's matches.
func (s *MatchStore) ListByUser(ctx context.Context, userID string) ([]domain.Match, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, posting_id, score, similarity, gap_analysis, calculated_at
		 FROM matches WHERE user_id = $1 ORDER BY score DESC, posting_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []domain.Match
	for rows.Next() {
		var (
			m   domain.Match
			gap []byte
		)
		if err := rows.Scan(&m.UserID, &m.PostingID, &m.Score, &m.Similarity, &gap, &m.CalculatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.GapAnalysis = gap
		out = append(out, m)
	}
	return out, rows.Err()
}
