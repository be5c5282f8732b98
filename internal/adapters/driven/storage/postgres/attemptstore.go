package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure AttemptStore implements the interface.
var _ driven.AttemptStore = (*AttemptStore)(nil)

// AttemptStore records ingestion attempt rows.
type AttemptStore struct {
	pool *pgxpool.Pool
}

// NewAttemptStore creates an attempt store on an existing pool.
func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

// DefaultListLimit bounds List when the caller passes zero.
const DefaultListLimit = 50

// Create opens an in_progress attempt row.
func (s *AttemptStore) Create(ctx context.Context, provider, query string) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ingestion_attempts (id, provider, query, status) VALUES ($1, $2, $3, $4)`,
		id, provider, query, string(domain.AttemptInProgress))
	if err != nil {
		return "", fmt.Errorf("create attempt: %w", err)
	}
	return id, nil
}

// Close finalises the attempt exactly once; a row already closed is
// left untouched.
func (s *AttemptStore) Close(ctx context.Context, attemptID string, status domain.AttemptStatus, found, saved int, errText string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE ingestion_attempts
		 SET status = $2, found = $3, saved = $4, error = $5, completed_at = now()
		 WHERE id = $1 AND status = $6`,
		attemptID, string(status), found, saved, errText, string(domain.AttemptInProgress))
	if err != nil {
		return fmt.Errorf("close attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns recent attempts, newest first.
func (s *AttemptStore) List(ctx context.Context, limit int) ([]domain.IngestionAttempt, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, provider, query, status, found, saved, error, started_at, completed_at
		 FROM ingestion_attempts ORDER BY started_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []domain.IngestionAttempt
	for rows.Next() {
		var (
			a      domain.IngestionAttempt
			status string
		)
		if err := rows.Scan(&a.ID, &a.Provider, &a.Query, &status, &a.Found, &a.Saved, &a.Error, &a.StartedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Status = domain.AttemptStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}
