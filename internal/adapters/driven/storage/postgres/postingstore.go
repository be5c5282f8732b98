package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure PostingStore implements the interface.
var _ driven.PostingStore = (*PostingStore)(nil)

// PostingStore persists postings in the postings table, unique on
// (user_id, hash).
type PostingStore struct {
	pool *pgxpool.Pool
}

// NewPostingStore creates a posting store on an existing pool.
func NewPostingStore(pool *pgxpool.Pool) *PostingStore {
	return &PostingStore{pool: pool}
}

const postingColumns = `id, user_id, hash, title, company, location, city, state, country,
	work_mode, employment_type, experience_level,
	salary_snippet, salary_min, salary_max, currency, salary_unit,
	description, description_html, snippet,
	skills, benefits, qualifications, responsibilities, technographics,
	source, source_id, source_url, apply_url, actor_id, applicants_count,
	company_website, company_industry, company_logo, company_revenue,
	company_employees, company_rating, company_ratings_count, company_ceo, company_description,
	posted_at, raw, status, embedding, notes, created_at, updated_at`

// upsertPostingSQL inserts one posting or, when (user_id, hash) already
// exists, refreshes only the volatile listing fields. Pipeline state
// (status, notes, embedding, created_at) is never touched on conflict.
const upsertPostingSQL = `INSERT INTO postings (
	id, user_id, hash, title, company, location, city, state, country,
	work_mode, employment_type, experience_level,
	salary_snippet, salary_min, salary_max, currency, salary_unit,
	description, description_html, snippet,
	skills, benefits, qualifications, responsibilities, technographics,
	source, source_id, source_url, apply_url, actor_id, applicants_count,
	company_website, company_industry, company_logo, company_revenue,
	company_employees, company_rating, company_ratings_count, company_ceo, company_description,
	posted_at, raw
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9,
	$10, $11, $12,
	$13, $14, $15, $16, $17,
	$18, $19, $20,
	$21, $22, $23, $24, $25,
	$26, $27, $28, $29, $30, $31,
	$32, $33, $34, $35,
	$36, $37, $38, $39, $40,
	$41, $42
)
ON CONFLICT (user_id, hash) DO UPDATE SET
	source_url            = EXCLUDED.source_url,
	salary_snippet        = EXCLUDED.salary_snippet,
	salary_min            = EXCLUDED.salary_min,
	salary_max            = EXCLUDED.salary_max,
	applicants_count      = EXCLUDED.applicants_count,
	company_rating        = EXCLUDED.company_rating,
	company_ratings_count = EXCLUDED.company_ratings_count,
	updated_at            = now()
RETURNING ` + postingColumns

// UpsertBatch writes the batch in one transaction, one conflict-resolved
// insert per posting, and returns the rows now current.
func (s *PostingStore) UpsertBatch(ctx context.Context, userID string, postings []domain.NormalizedPosting) ([]domain.Posting, error) {
	if len(postings) == 0 {
		return nil, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range postings {
		np := &postings[i]
		batch.Queue(upsertPostingSQL,
			uuid.NewString(), userID, np.Hash, np.Title, np.Company, np.Location, np.City, np.State, np.Country,
			np.WorkMode, np.EmploymentType, np.ExperienceLevel,
			np.SalarySnippet, np.SalaryMin, np.SalaryMax, np.Currency, np.SalaryUnit,
			np.Description, np.DescriptionHTML, np.Snippet,
			orEmpty(np.Skills), orEmpty(np.Benefits), orEmpty(np.Qualifications), orEmpty(np.Responsibilities), orEmpty(np.Technographics),
			np.Source, np.SourceID, np.SourceURL, np.ApplyURL, np.ActorID, np.ApplicantsCount,
			np.CompanyWebsite, np.CompanyIndustry, np.CompanyLogo, np.CompanyRevenue,
			np.CompanyEmployees, np.CompanyRating, np.CompanyRatingsCount, np.CompanyCEO, np.CompanyDescription,
			nullTime(np.PostedAt), []byte(np.Raw),
		)
	}

	results := tx.SendBatch(ctx, batch)
	rows := make([]domain.Posting, 0, len(postings))
	for range postings {
		p, err := scanPosting(results.QueryRow())
		if err != nil {
			results.Close()
			return nil, fmt.Errorf("upsert posting: %w", err)
		}
		rows = append(rows, *p)
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rows, nil
}

// Get retrieves a posting scoped to the owning user.
func (s *PostingStore) Get(ctx context.Context, userID, postingID string) (*domain.Posting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM postings WHERE user_id = $1 AND id = $2`,
		userID, postingID)
	p, err := scanPosting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get posting: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's postings, oldest first. An empty status
// means all statuses.
func (s *PostingStore) ListByUser(ctx context.Context, userID string, status domain.Status) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

// ListScorable returns the user's embedded postings in the eligible
// status set.
func (s *PostingStore) ListScorable(ctx context.Context, userID string, eligible []domain.Status) ([]domain.Posting, error) {
	statuses := make([]string, len(eligible))
	for i, st := range eligible {
		statuses[i] = string(st)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+postingColumns+` FROM postings
		 WHERE user_id = $1 AND embedding IS NOT NULL AND status = ANY($2)
		 ORDER BY created_at, id`,
		userID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list scorable postings: %w", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

// SaveEmbedding stores the vector for a posting.
func (s *PostingStore) SaveEmbedding(ctx context.Context, userID, postingID string, embedding []float32) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE postings SET embedding = $1, updated_at = now() WHERE user_id = $2 AND id = $3`,
		pgvector.NewVector(embedding), userID, postingID)
	if err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update rewrites the posting's normalised fields after hydration.
// Status, notes and embedding are left alone.
func (s *PostingStore) Update(ctx context.Context, posting *domain.Posting) error {
	np := &posting.NormalizedPosting
	tag, err := s.pool.Exec(ctx,
		`UPDATE postings SET
			title = $3, company = $4, location = $5, city = $6, state = $7, country = $8,
			work_mode = $9, employment_type = $10, experience_level = $11,
			salary_snippet = $12, salary_min = $13, salary_max = $14, currency = $15, salary_unit = $16,
			description = $17, description_html = $18, snippet = $19,
			skills = $20, benefits = $21, qualifications = $22, responsibilities = $23, technographics = $24,
			source_url = $25, apply_url = $26, applicants_count = $27,
			company_website = $28, company_industry = $29, company_logo = $30, company_revenue = $31,
			company_employees = $32, company_rating = $33, company_ratings_count = $34,
			company_ceo = $35, company_description = $36,
			posted_at = $37, raw = $38, updated_at = now()
		 WHERE user_id = $1 AND id = $2`,
		posting.UserID, posting.ID,
		np.Title, np.Company, np.Location, np.City, np.State, np.Country,
		np.WorkMode, np.EmploymentType, np.ExperienceLevel,
		np.SalarySnippet, np.SalaryMin, np.SalaryMax, np.Currency, np.SalaryUnit,
		np.Description, np.DescriptionHTML, np.Snippet,
		orEmpty(np.Skills), orEmpty(np.Benefits), orEmpty(np.Qualifications), orEmpty(np.Responsibilities), orEmpty(np.Technographics),
		np.SourceURL, np.ApplyURL, np.ApplicantsCount,
		np.CompanyWebsite, np.CompanyIndustry, np.CompanyLogo, np.CompanyRevenue,
		np.CompanyEmployees, np.CompanyRating, np.CompanyRatingsCount,
		np.CompanyCEO, np.CompanyDescription,
		nullTime(np.PostedAt), []byte(np.Raw),
	)
	if err != nil {
		return fmt.Errorf("update posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (*domain.Posting, error) {
	var (
		p         domain.Posting
		postedAt  *time.Time
		raw       []byte
		embedding *pgvector.Vector
		status    string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Hash, &p.Title, &p.Company, &p.Location, &p.City, &p.State, &p.Country,
		&p.WorkMode, &p.EmploymentType, &p.ExperienceLevel,
		&p.SalarySnippet, &p.SalaryMin, &p.SalaryMax, &p.Currency, &p.SalaryUnit,
		&p.Description, &p.DescriptionHTML, &p.Snippet,
		&p.Skills, &p.Benefits, &p.Qualifications, &p.Responsibilities, &p.Technographics,
		&p.Source, &p.SourceID, &p.SourceURL, &p.ApplyURL, &p.ActorID, &p.ApplicantsCount,
		&p.CompanyWebsite, &p.CompanyIndustry, &p.CompanyLogo, &p.CompanyRevenue,
		&p.CompanyEmployees, &p.CompanyRating, &p.CompanyRatingsCount, &p.CompanyCEO, &p.CompanyDescription,
		&postedAt, &raw, &status, &embedding, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if postedAt != nil {
		p.PostedAt = *postedAt
	}
	p.Raw = raw
	p.Status = domain.Status(status)
	if embedding != nil {
		p.Embedding = embedding.Slice()
	}
	return &p, nil
}

func collectPostings(rows pgx.Rows) ([]domain.Posting, error) {
	var out []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// orEmpty keeps nil slices out of NOT NULL array columns.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
