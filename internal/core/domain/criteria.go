package domain

import (
	"fmt"
	"strings"
	"time"
)

// Criteria is a user-defined filter gating which postings surface on the
// recommended view. Its keywords also drive the query strings periodic
// discovery runs for the user.
type Criteria struct {
	// ID is the unique identifier for the criteria.
	ID string

	// UserID is the owning user's account.
	UserID string

	// Label is the human-readable name, e.g. "Backend roles".
	Label string

	// Keywords is the ordered, non-empty list of title keywords.
	// A posting must contain at least one keyword (case-insensitive
	// substring) to appear on the recommended view.
	Keywords []string

	// Optional filters.
	Location       string
	WorkMode       string
	EmploymentType string
	SalaryMin      *float64

	// Active controls whether the criteria participates in filtering
	// and scheduled discovery.
	Active bool

	// CreatedAt is when the criteria was created.
	CreatedAt time.Time

	// UpdatedAt is when the criteria was last edited.
	UpdatedAt time.Time
}

// Validate checks the criteria is well-formed before any I/O.
// A criteria must carry at least one non-blank keyword.
func (c *Criteria) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%w: criteria user id is required", ErrInvalidInput)
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("%w: criteria requires at least one keyword", ErrInvalidInput)
	}
	for _, kw := range c.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: criteria keywords must not be blank", ErrInvalidInput)
		}
	}
	return nil
}

// NormalizedKeywords returns the keywords lowercased and trimmed, in
// their original order, for case-insensitive matching.
func (c *Criteria) NormalizedKeywords() []string {
	out := make([]string, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// MatchesTitle reports whether the posting title contains at least one of
// the criteria's keywords as a case-insensitive substring.
func (c *Criteria) MatchesTitle(title string) bool {
	title = strings.ToLower(title)
	for _, kw := range c.NormalizedKeywords() {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
