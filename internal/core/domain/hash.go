package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashSeparator joins the normalised identity fields before digesting.
// It cannot appear in a normalised field, so distinct field tuples can
// never collide by concatenation.
const hashSeparator = "|"

// ContentHash computes the deterministic dedup fingerprint of a posting
// from its identity fields. Identical logical postings from different
// providers collapse to the same hash, so the unique (user, hash)
// constraint performs cross-source dedup, not just intra-source dedup.
//
// Each field is lowercased, stripped of non-alphanumeric characters
// (spaces survive), and has its whitespace collapsed. Location and city
// are optional; two postings differing only in an absent location hash
// identically.
func ContentHash(title, company, location, city string) string {
	parts := []string{
		normalizeHashField(title),
		normalizeHashField(company),
		normalizeHashField(location),
		normalizeHashField(city),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, hashSeparator)))
	return hex.EncodeToString(sum[:])
}

// normalizeHashField canonicalises a single identity field: lowercase,
// keep only alphanumerics and spaces, collapse whitespace runs, trim.
func normalizeHashField(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
