package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCmd_Use(t *testing.T) {
	assert.Equal(t, "score", scoreCmd.Use)
}

func TestScoreCmd_Short(t *testing.T) {
	assert.Equal(t, "Score postings against the user's profile", scoreCmd.Short)
}

func TestScoreCmd_BatchByDefault(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"score", "--user", "u1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Scored 3 postings.")
}

func TestScoreCmd_SinglePosting(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"score", "--user", "u1", "--posting", "p-1"})
	defer func() {
		rootCmd.SetArgs(nil)
		scorePosting = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Score: 87")
	assert.Contains(t, buf.String(), "0.8700")
}

func TestScoreCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"score", "--user", "u1", "--posting", "p-1", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		scorePosting = ""
		scoreJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Score\"")
	assert.Contains(t, buf.String(), "\"Similarity\"")
}

func TestScoreCmd_ServiceNotConfigured(t *testing.T) {
	oldScorer := scorer
	scorer = nil
	defer func() {
		scorer = oldScorer
	}()

	err := runScore(scoreCmd, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
