// Package hydrator provides a Hydrator adapter backed by an external
// enrichment HTTP API serving deep posting data keyed by source id.
package hydrator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure HTTPHydrator implements the interface.
var _ driven.Hydrator = (*HTTPHydrator)(nil)

// DefaultTimeout bounds one enrichment request.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the HTTP hydrator.
type Config struct {
	// BaseURL is the enrichment API root (required). The hydrator
	// fetches GET {BaseURL}/postings/{sourceID}.
	BaseURL string

	// Token is an optional bearer token.
	Token string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// HTTPHydrator fetches deep posting data over HTTP.
type HTTPHydrator struct {
	cfg    Config
	client *http.Client
}

// enrichedPosting is the enrichment API response shape.
type enrichedPosting struct {
	Description        string   `json:"description"`
	DescriptionHTML    string   `json:"description_html"`
	Skills             []string `json:"skills"`
	Benefits           []string `json:"benefits"`
	Qualifications     []string `json:"qualifications"`
	Responsibilities   []string `json:"responsibilities"`
	Technographics     []string `json:"technographics"`
	ApplyURL           string   `json:"apply_url"`
	ApplicantsCount    *int     `json:"applicants_count"`
	CompanyWebsite     string   `json:"company_website"`
	CompanyIndustry    string   `json:"company_industry"`
	CompanyLogo        string   `json:"company_logo"`
	CompanyRevenue     string   `json:"company_revenue"`
	CompanyEmployees   *int     `json:"company_employees"`
	CompanyRating      *float64 `json:"company_rating"`
	CompanyRatings     *int     `json:"company_ratings_count"`
	CompanyCEO         string   `json:"company_ceo"`
	CompanyDescription string   `json:"company_description"`
}

// New creates an HTTP hydrator.
func New(cfg Config) (*HTTPHydrator, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: hydrator base url", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &HTTPHydrator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Hydrate fetches the enriched posting for a source id.
func (h *HTTPHydrator) Hydrate(ctx context.Context, sourceID string) (*domain.NormalizedPosting, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", domain.ErrInvalidInput)
	}

	reqURL := h.cfg.BaseURL + "/postings/" + url.PathEscape(sourceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.Token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: posting %s", domain.ErrNotFound, sourceID)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: hydrator", domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("hydrator returned %d: %s", resp.StatusCode, string(body))
	}

	var enriched enrichedPosting
	if err := json.NewDecoder(resp.Body).Decode(&enriched); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &domain.NormalizedPosting{
		Description:         enriched.Description,
		DescriptionHTML:     enriched.DescriptionHTML,
		Skills:              enriched.Skills,
		Benefits:            enriched.Benefits,
		Qualifications:      enriched.Qualifications,
		Responsibilities:    enriched.Responsibilities,
		Technographics:      enriched.Technographics,
		ApplyURL:            enriched.ApplyURL,
		ApplicantsCount:     enriched.ApplicantsCount,
		CompanyWebsite:      enriched.CompanyWebsite,
		CompanyIndustry:     enriched.CompanyIndustry,
		CompanyLogo:         enriched.CompanyLogo,
		CompanyRevenue:      enriched.CompanyRevenue,
		CompanyEmployees:    enriched.CompanyEmployees,
		CompanyRating:       enriched.CompanyRating,
		CompanyRatingsCount: enriched.CompanyRatings,
		CompanyCEO:          enriched.CompanyCEO,
		CompanyDescription:  enriched.CompanyDescription,
	}, nil
}
