package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure Remotive implements the interface.
var _ driven.SourceProvider = (*Remotive)(nil)

// Remotive defaults.
const (
	RemotiveName           = "remotive"
	DefaultRemotiveBaseURL = "https://remotive.com/api/remote-jobs"
)

// RemotiveConfig tunes the Remotive provider. The API is public, so
// there are no credentials.
type RemotiveConfig struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
}

// Remotive fetches remote-only postings from the Remotive public API.
type Remotive struct {
	cfg    RemotiveConfig
	client *http.Client
}

type remotiveResponse struct {
	JobCount int           `json:"total-job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID          int      `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Company     string   `json:"company_name"`
	Category    string   `json:"category"`
	JobType     string   `json:"job_type"`
	PublishedAt string   `json:"publication_date"`
	Location    string   `json:"candidate_required_location"`
	Salary      string   `json:"salary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// NewRemotive creates the Remotive provider.
func NewRemotive(cfg RemotiveConfig) *Remotive {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultRemotiveBaseURL
	}
	return &Remotive{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultClientTimeout},
	}
}

// Name returns the provider name.
func (p *Remotive) Name() string {
	return RemotiveName
}

// Fetch runs one search against the Remotive API.
func (p *Remotive) Fetch(ctx context.Context, query string, opts domain.DiscoveryOptions) (*domain.IngestionResult, error) {
	params := url.Values{}
	params.Set("search", query)
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: remotive", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := &domain.IngestionResult{TotalFound: apiResp.JobCount}
	for i := range apiResp.Jobs {
		result.Postings = append(result.Postings, p.normalize(&apiResp.Jobs[i]))
	}
	return result, nil
}

// normalize maps one Remotive job to the canonical posting shape. Every
// Remotive listing is remote by definition.
func (p *Remotive) normalize(j *remotiveJob) domain.NormalizedPosting {
	np := domain.NormalizedPosting{
		Title:          strings.TrimSpace(j.Title),
		Company:        strings.TrimSpace(j.Company),
		Location:       j.Location,
		WorkMode:       "remote",
		EmploymentType: employmentTypeFromRemotive(j.JobType),
		SalarySnippet:  j.Salary,
		Description:    j.Description,
		Skills:         j.Tags,
		Source:         RemotiveName,
		SourceID:       strconv.Itoa(j.ID),
		SourceURL:      j.URL,
	}
	if t, err := time.Parse("2006-01-02T15:04:05", j.PublishedAt); err == nil {
		np.PostedAt = t
	}
	if raw, err := json.Marshal(j); err == nil {
		np.Raw = raw
	}

	np.Hash = domain.ContentHash(np.Title, np.Company, np.Location, np.City)
	return np
}

func employmentTypeFromRemotive(jobType string) string {
	switch jobType {
	case "full_time":
		return "full-time"
	case "part_time":
		return "part-time"
	case "contract", "freelance":
		return "contract"
	default:
		return ""
	}
}
