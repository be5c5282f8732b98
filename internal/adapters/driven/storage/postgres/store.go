// Package postgres implements the storage ports on PostgreSQL with the
// pgvector extension for embedding columns.
package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

//go:embed schema.sql
var schemaSQL string

// Store owns the connection pool shared by all postgres-backed stores.
type Store struct {
	pool *pgxpool.Pool
}

// New creates and verifies a connection pool. pgvector types are
// registered on every connection so embedding columns scan natively.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Migrate applies the embedded schema. Statements are idempotent, so
// running it at every startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Postings returns the posting store bound to this pool.
func (s *Store) Postings() *PostingStore { return &PostingStore{pool: s.pool} }

// Matches returns the match store bound to this pool.
func (s *Store) Matches() *MatchStore { return &MatchStore{pool: s.pool} }

// Criteria returns the criteria store bound to this pool.
func (s *Store) Criteria() *CriteriaStore { return &CriteriaStore{pool: s.pool} }

// Attempts returns the attempt store bound to this pool.
func (s *Store) Attempts() *AttemptStore { return &AttemptStore{pool: s.pool} }

// Profiles returns the profile store bound to this pool.
func (s *Store) Profiles() *ProfileStore { return &ProfileStore{pool: s.pool} }
