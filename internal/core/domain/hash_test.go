package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContentHash_Deterministic tests that identical inputs always
// produce the same digest.
func TestContentHash_Deterministic(t *testing.T) {
	a := ContentHash("Senior Go Engineer", "Acme Corp", "Berlin, Germany", "Berlin")
	b := ContentHash("Senior Go Engineer", "Acme Corp", "Berlin, Germany", "Berlin")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}

// TestContentHash_CaseAndWhitespaceInsensitive tests that case and
// whitespace variations collapse to the same hash.
func TestContentHash_CaseAndWhitespaceInsensitive(t *testing.T) {
	base := ContentHash("Senior Go Engineer", "Acme Corp", "Berlin", "")

	variants := []struct {
		name    string
		title   string
		company string
	}{
		{"uppercase", "SENIOR GO ENGINEER", "ACME CORP"},
		{"padded", "  Senior Go Engineer  ", " Acme Corp "},
		{"collapsed whitespace", "Senior   Go\tEngineer", "Acme\nCorp"},
		{"punctuation stripped", "Senior Go Engineer!", "Acme, Corp."},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, base, ContentHash(tt.title, tt.company, "Berlin", ""))
		})
	}
}

// TestContentHash_AbsentLocationCollapses tests that two postings
// differing only in location collapse when location is absent from both.
func TestContentHash_AbsentLocationCollapses(t *testing.T) {
	a := ContentHash("Data Scientist", "Globex", "", "")
	b := ContentHash("Data Scientist", "Globex", "", "")

	assert.Equal(t, a, b)
}

// TestContentHash_DistinguishesFields tests that different identity
// fields produce different hashes.
func TestContentHash_DistinguishesFields(t *testing.T) {
	base := ContentHash("Data Scientist", "Globex", "Boston", "")

	assert.NotEqual(t, base, ContentHash("Data Engineer", "Globex", "Boston", ""))
	assert.NotEqual(t, base, ContentHash("Data Scientist", "Initech", "Boston", ""))
	assert.NotEqual(t, base, ContentHash("Data Scientist", "Globex", "Austin", ""))
	assert.NotEqual(t, base, ContentHash("Data Scientist", "Globex", "Boston", "Boston"))
}

// TestContentHash_CityDiscriminator tests that city acts as an extra
// discriminator for providers that supply it.
func TestContentHash_CityDiscriminator(t *testing.T) {
	without := ContentHash("Backend Developer", "Hooli", "Remote", "")
	with := ContentHash("Backend Developer", "Hooli", "Remote", "Palo Alto")

	assert.NotEqual(t, without, with)
}
