package domain

import "time"

// Profile is a candidate profile: the resume text a user's postings are
// scored against, plus its embedding vector.
type Profile struct {
	// UserID is the owning user's account. One profile per user.
	UserID string

	// Headline is a short self-description, e.g. "Senior Go Engineer".
	Headline string

	// ResumeText is the full descriptive text used for embedding.
	ResumeText string

	// Embedding is the vector representation of ResumeText. Nil until
	// the profile has been embedded; postings cannot be scored before
	// that.
	Embedding []float32

	// UpdatedAt is when the profile was last edited.
	UpdatedAt time.Time
}

// HasEmbedding reports whether the profile can participate in scoring.
func (p *Profile) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
