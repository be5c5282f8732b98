package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatus_IsValid tests status recognition.
func TestStatus_IsValid(t *testing.T) {
	valid := []Status{
		StatusRecommended, StatusApplied, StatusInterviewing,
		StatusOffer, StatusRejected, StatusArchived,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %q", s)
	}

	assert.False(t, Status("wishlist").IsValid())
	assert.False(t, Status("").IsValid())
}

// TestPosting_Hydrated tests the hydration guard condition.
func TestPosting_Hydrated(t *testing.T) {
	tests := []struct {
		name           string
		description    string
		technographics []string
		want           bool
	}{
		{"both present", "long description", []string{"Go", "Postgres"}, true},
		{"missing description", "", []string{"Go"}, false},
		{"missing technographics", "long description", nil, false},
		{"both missing", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Posting{NormalizedPosting: NormalizedPosting{
				Description:    tt.description,
				Technographics: tt.technographics,
			}}
			assert.Equal(t, tt.want, p.Hydrated())
		})
	}
}

// TestPosting_EmbeddingText tests that the richest available text is used.
func TestPosting_EmbeddingText(t *testing.T) {
	p := Posting{NormalizedPosting: NormalizedPosting{
		Title:       "Go Developer",
		Description: "Build services.",
		Snippet:     "short",
	}}
	assert.Equal(t, "Go Developer\nBuild services.", p.EmbeddingText())

	p.Description = ""
	assert.Equal(t, "Go Developer\nshort", p.EmbeddingText())

	p.Snippet = ""
	assert.Equal(t, "Go Developer", p.EmbeddingText())
}
