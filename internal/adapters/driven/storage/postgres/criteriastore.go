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

// Ensure CriteriaStore implements the interface.
var _ driven.CriteriaStore = (*CriteriaStore)(nil)

// CriteriaStore persists user-defined criteria.
type CriteriaStore struct {
	pool *pgxpool.Pool
}

// NewCriteriaStore creates a criteria store on an existing pool.
func NewCriteriaStore(pool *pgxpool.Pool) *CriteriaStore {
	return &CriteriaStore{pool: pool}
}

const criteriaColumns = `id, user_id, label, keywords, location, work_mode, employment_type, salary_min, active, created_at, updated_at`

// Save creates or updates a criteria.
func (s *CriteriaStore) Save(ctx context.Context, criteria domain.Criteria) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO criteria (id, user_id, label, keywords, location, work_mode, employment_type, salary_min, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			label           = EXCLUDED.label,
			keywords        = EXCLUDED.keywords,
			location        = EXCLUDED.location,
			work_mode       = EXCLUDED.work_mode,
			employment_type = EXCLUDED.employment_type,
			salary_min      = EXCLUDED.salary_min,
			active          = EXCLUDED.active,
			updated_at      = EXCLUDED.updated_at`,
		criteria.ID, criteria.UserID, criteria.Label, criteria.Keywords,
		criteria.Location, criteria.WorkMode, criteria.EmploymentType,
		criteria.SalaryMin, criteria.Active, criteria.CreatedAt, criteria.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save criteria: %w", err)
	}
	return nil
}

// Get retrieves a criteria scoped to the owning user.
func (s *CriteriaStore) Get(ctx context.Context, userID, criteriaID string) (*domain.Criteria, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+criteriaColumns+` FROM criteria WHERE user_id = $1 AND id = $2`,
		userID, criteriaID)
	c, err := scanCriteria(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get criteria: %w", err)
	}
	return c, nil
}

// Delete removes a user's criteria.
func (s *CriteriaStore) Delete(ctx context.Context, userID, criteriaID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM criteria WHERE user_id = $1 AND id = $2`, userID, criteriaID)
	if err != nil {
		return fmt.Errorf("delete criteria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser returns all of a user's criteria.
func (s *CriteriaStore) ListByUser(ctx context.Context, userID string) ([]domain.Criteria, error) {
	return s.list(ctx,
		`SELECT `+criteriaColumns+` FROM criteria WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
}

// ListActive returns the user's active criteria only.
func (s *CriteriaStore) ListActive(ctx context.Context, userID string) ([]domain.Criteria, error) {
	return s.list(ctx,
		`SELECT `+criteriaColumns+` FROM criteria WHERE user_id = $1 AND active ORDER BY created_at, id`,
		userID)
}

// ListUsersWithActive returns every user holding at least one active
// criteria.
func (s *CriteriaStore) ListUsersWithActive(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT user_id FROM criteria WHERE active ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users with active criteria: %w", err)
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

func (s *CriteriaStore) list(ctx context.Context, query string, args ...any) ([]domain.Criteria, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	defer rows.Close()

	var out []domain.Criteria
	for rows.Next() {
		c, err := scanCriteria(rows)
		if err != nil {
			return nil, fmt.Errorf("scan criteria: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCriteria(row rowScanner) (*domain.Criteria, error) {
	var c domain.Criteria
	err := row.Scan(
		&c.ID, &c.UserID, &c.Label, &c.Keywords, &c.Location,
		&c.WorkMode, &c.EmploymentType, &c.SalaryMin, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
