package domain

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a persisted posting on the user's board.
type Status string

// Posting lifecycle statuses.
const (
	StatusRecommended  Status = "recommended"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusArchived     Status = "archived"
)

// IsValid returns true if the status is recognised.
func (s Status) IsValid() bool {
	switch s {
	case StatusRecommended, StatusApplied, StatusInterviewing,
		StatusOffer, StatusRejected, StatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Enum defaults applied during ingestion when a provider leaves the
// field absent.
const (
	WorkModeUnknown             = "unknown"
	ExperienceLevelNotSpecified = "not-specified"
	CurrencyDefault             = "USD"
)

// NormalizedPosting is the canonical, provider-agnostic shape of a job
// listing before persistence. Providers fill fields on a best-effort
// basis; fields they cannot supply are left absent, never fabricated.
type NormalizedPosting struct {
	// Title is the job title as published by the source.
	Title string

	// Company is the hiring company's display name.
	Company string

	// Location is the raw location string from the source.
	Location string

	// City, State and Country are optional structured location parts.
	City    string
	State   string
	Country string

	// WorkMode is remote/hybrid/onsite, or "unknown" when absent.
	WorkMode string

	// EmploymentType is full-time/part-time/contract when known.
	EmploymentType string

	// ExperienceLevel is the seniority band, or "not-specified".
	ExperienceLevel string

	// SalarySnippet is the free-text compensation blurb from the source.
	SalarySnippet string

	// SalaryMin and SalaryMax are optional numeric compensation bounds.
	SalaryMin *float64
	SalaryMax *float64

	// Currency is the ISO currency code, defaulted to "USD" when absent.
	Currency string

	// SalaryUnit is the pay period (year, month, hour) when known.
	SalaryUnit string

	// Description is the plain-text job description.
	Description string

	// DescriptionHTML is the original HTML description when available.
	DescriptionHTML string

	// Snippet is a short summary suitable for list views.
	Snippet string

	// Extracted arrays.
	Skills           []string
	Benefits         []string
	Qualifications   []string
	Responsibilities []string
	Technographics   []string

	// Provenance.
	Source    string // provider name, e.g. "adzuna"
	SourceID  string // source-local identifier
	SourceURL string
	ApplyURL  string
	ActorID   string // optional scraper/actor run identifier

	// ApplicantsCount is the application count reported by the source.
	ApplicantsCount *int

	// Company intelligence fields.
	CompanyWebsite      string
	CompanyIndustry     string
	CompanyLogo         string
	CompanyRevenue      string
	CompanyEmployees    *int
	CompanyRating       *float64
	CompanyRatingsCount *int
	CompanyCEO          string
	CompanyDescription  string

	// PostedAt is when the source says the job was published.
	PostedAt time.Time

	// Hash is the content hash used as the dedup key. Providers may
	// precompute it with a more precise identity key; the ingest path
	// falls back to ContentHash when empty.
	Hash string

	// Raw preserves the source payload verbatim for audit and replay.
	Raw json.RawMessage
}

// Posting is the persisted, user-owned record derived from a
// NormalizedPosting. (UserID, Hash) is unique: re-ingestion of the same
// logical posting for the same user updates the row, never duplicates it.
type Posting struct {
	NormalizedPosting

	// ID is the unique identifier for the row.
	ID string

	// UserID is the owning user's account.
	UserID string

	// Status is the posting's position in the user's pipeline.
	Status Status

	// Embedding is the vector representation of the posting text.
	// Nil until the posting has been embedded.
	Embedding []float32

	// Notes holds free-text candidate notes.
	Notes string

	// CreatedAt is when the posting was first persisted for this user.
	CreatedAt time.Time

	// UpdatedAt is when the row was last touched.
	UpdatedAt time.Time
}

// Hydrated reports whether the posting already carries deep data: both a
// non-empty description and a non-empty technographics list. Hydration is
// a no-op for hydrated postings.
func (p *Posting) Hydrated() bool {
	return p.Description != "" && len(p.Technographics) > 0
}

// EmbeddingText returns the text used to embed this posting: the title
// plus the richest descriptive text available.
func (p *Posting) EmbeddingText() string {
	text := p.Title
	switch {
	case p.Description != "":
		text += "\n" + p.Description
	case p.Snippet != "":
		text += "\n" + p.Snippet
	}
	return text
}
