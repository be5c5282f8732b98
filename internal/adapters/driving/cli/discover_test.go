package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCmd_Use(t *testing.T) {
	assert.Equal(t, "discover [query]", discoverCmd.Use)
}

func TestDiscoverCmd_Short(t *testing.T) {
	assert.Equal(t, "Discover job postings from all enabled boards", discoverCmd.Short)
}

func TestDiscoverCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"discover", "--user", "u1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDiscoverCmd_HasLimitFlag(t *testing.T) {
	flag := discoverCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestDiscoverCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"discover", "--user", "u1", "go developer"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Saved 1 postings")
	assert.Contains(t, buf.String(), "Senior Go Engineer - Acme")
}

func TestDiscoverCmd_PassesOptionsThrough(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := discoverer.(*mockDiscovererCLI)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"discover", "--user", "u1", "-l", "Berlin", "-n", "25", "sre"})
	defer func() {
		rootCmd.SetArgs(nil)
		discoverLocation = ""
		discoverLimit = 0
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "u1", mock.lastUser)
	assert.Equal(t, "sre", mock.lastQuery)
	assert.Equal(t, "Berlin", mock.lastOpts.Location)
	assert.Equal(t, 25, mock.lastOpts.Limit)
}

func TestDiscoverCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"discover", "--user", "u1", "--json", "go developer"})
	defer func() {
		rootCmd.SetArgs(nil)
		discoverJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Postings\"")
	assert.Contains(t, buf.String(), "\"TotalFound\"")
}

func TestDiscoverCmd_ServiceNotConfigured(t *testing.T) {
	oldDiscoverer := discoverer
	discoverer = nil
	defer func() {
		discoverer = oldDiscoverer
	}()

	err := runDiscover(discoverCmd, []string{"go developer"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
