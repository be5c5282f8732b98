package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore persists candidate profiles, one row per user.
type ProfileStore struct {
	pool *pgxpool.Pool
}

// NewProfileStore creates a profile store on an existing pool.
func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

// Save creates or updates a profile.
func (s *ProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	var embedding any
	if len(profile.Embedding) > 0 {
		embedding = pgvector.NewVector(profile.Embedding)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, headline, resume_text, embedding, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
			headline    = EXCLUDED.headline,
			resume_text = EXCLUDED.resume_text,
			embedding   = EXCLUDED.embedding,
			updated_at  = EXCLUDED.updated_at`,
		profile.UserID, profile.Headline, profile.ResumeText, embedding, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Get retrieves a user's profile.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		p         domain.Profile
		embedding *pgvector.Vector
	)
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, headline, resume_text, embedding, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Headline, &p.ResumeText, &embedding, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if embedding != nil {
		p.Embedding = embedding.Slice()
	}
	return &p, nil
}

// ListUserIDs returns every user with a profile.
func (s *ProfileStore) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list profile users: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, userID)
	}
	return out, rows.Err()
}
