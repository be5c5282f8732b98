package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure Adzuna implements the interface.
var _ driven.SourceProvider = (*Adzuna)(nil)

// Adzuna defaults.
const (
	AdzunaName           = "adzuna"
	DefaultAdzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"
	DefaultAdzunaCountry = "us"
	adzunaPageSize       = 50
	adzunaMaxPages       = 3 // max 150 results per query
	defaultClientTimeout = 15 * time.Second
)

// AdzunaConfig holds credentials and tuning for the Adzuna provider.
type AdzunaConfig struct {
	// AppID and AppKey are the Adzuna API credentials (required).
	AppID  string
	AppKey string

	// Country selects the Adzuna market, e.g. "us", "gb", "fr".
	Country string

	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
}

// Adzuna fetches postings from the Adzuna public search API.
type Adzuna struct {
	cfg    AdzunaConfig
	client *http.Client
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	// contract_time is full_time/part_time, contract_type is
	// permanent/contract.
	ContractTime string `json:"contract_time"`
	ContractType string `json:"contract_type"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
}

// NewAdzuna creates the Adzuna provider. Missing credentials fail
// construction: an unregistered provider is the correct degraded mode.
func NewAdzuna(cfg AdzunaConfig) (*Adzuna, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("%w: adzuna app_id and app_key", domain.ErrMissingCredentials)
	}
	if cfg.Country == "" {
		cfg.Country = DefaultAdzunaCountry
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAdzunaBaseURL
	}
	return &Adzuna{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultClientTimeout},
	}, nil
}

// Name returns the provider name.
func (a *Adzuna) Name() string {
	return AdzunaName
}

// Fetch pages through search results for the query. A page that fails
// after the first still returns what earlier pages produced, with the
// failure recorded as a non-fatal error.
func (a *Adzuna) Fetch(ctx context.Context, query string, opts domain.DiscoveryOptions) (*domain.IngestionResult, error) {
	result := &domain.IngestionResult{}

	limit := opts.Limit
	if limit <= 0 || limit > adzunaPageSize*adzunaMaxPages {
		limit = adzunaPageSize * adzunaMaxPages
	}

	for page := 1; page <= adzunaMaxPages && len(result.Postings) < limit; page++ {
		resp, err := a.fetchPage(ctx, query, opts.Location, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", page, err))
			break
		}
		result.TotalFound = resp.Count

		for i := range resp.Results {
			if len(result.Postings) >= limit {
				break
			}
			result.Postings = append(result.Postings, a.normalize(&resp.Results[i]))
		}
		if len(resp.Results) < adzunaPageSize {
			break
		}
	}

	return result, nil
}

func (a *Adzuna) fetchPage(ctx context.Context, query, location string, page int) (*adzunaResponse, error) {
	params := url.Values{}
	params.Set("app_id", a.cfg.AppID)
	params.Set("app_key", a.cfg.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("what", query)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")
	if location != "" {
		params.Set("where", location)
	}

	reqURL := fmt.Sprintf("%s/%s/search/%d?%s", a.cfg.BaseURL, a.cfg.Country, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: adzuna", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &apiResp, nil
}

// normalize maps one Adzuna result to the canonical posting shape.
// Adzuna location areas run country-first, so the last element is the
// most specific locality and becomes the city discriminator.
func (a *Adzuna) normalize(r *adzunaResult) domain.NormalizedPosting {
	city := ""
	if n := len(r.Location.Area); n > 1 {
		city = r.Location.Area[n-1]
	}

	np := domain.NormalizedPosting{
		Title:          r.Title,
		Company:        r.Company.DisplayName,
		Location:       r.Location.DisplayName,
		City:           city,
		Snippet:        r.Description,
		EmploymentType: employmentType(r.ContractTime, r.ContractType),
		Source:         AdzunaName,
		SourceID:       r.ID,
		SourceURL:      r.RedirectURL,
	}
	if r.SalaryMin > 0 {
		np.SalaryMin = &r.SalaryMin
	}
	if r.SalaryMax > 0 {
		np.SalaryMax = &r.SalaryMax
	}
	if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
		np.PostedAt = t
	}
	if raw, err := json.Marshal(r); err == nil {
		np.Raw = raw
	}

	np.Hash = domain.ContentHash(np.Title, np.Company, np.Location, np.City)
	return np
}

func employmentType(contractTime, contractType string) string {
	switch contractTime {
	case "full_time":
		return "full-time"
	case "part_time":
		return "part-time"
	}
	if contractType == "contract" {
		return "contract"
	}
	return ""
}
