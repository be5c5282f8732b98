package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeScore_Clamping tests the extremes of the similarity range.
func TestNormalizeScore_Clamping(t *testing.T) {
	assert.Equal(t, 0, NormalizeScore(-1))
	assert.Equal(t, 100, NormalizeScore(1))

	// Out-of-range inputs are clamped, not rejected.
	assert.Equal(t, 0, NormalizeScore(-2.5))
	assert.Equal(t, 100, NormalizeScore(1.7))
}

// TestNormalizeScore_NegativeSimilarityIsZero tests that any negative
// similarity floors at zero.
func TestNormalizeScore_NegativeSimilarityIsZero(t *testing.T) {
	assert.Equal(t, 0, NormalizeScore(-0.01))
	assert.Equal(t, 0, NormalizeScore(-0.73))
}

// TestNormalizeScore_Rounding tests the round-half-away behaviour.
func TestNormalizeScore_Rounding(t *testing.T) {
	assert.Equal(t, 50, NormalizeScore(0.5))
	assert.Equal(t, 85, NormalizeScore(0.845))
	assert.Equal(t, 85, NormalizeScore(0.854))
	assert.Equal(t, 86, NormalizeScore(0.855))
}

// TestNormalizeScore_Monotonic tests that higher similarity never yields
// a lower integer score.
func TestNormalizeScore_Monotonic(t *testing.T) {
	prev := NormalizeScore(-1)
	for s := -1.0; s <= 1.0; s += 0.001 {
		cur := NormalizeScore(s)
		assert.GreaterOrEqual(t, cur, prev, "similarity %f", s)
		prev = cur
	}
}
