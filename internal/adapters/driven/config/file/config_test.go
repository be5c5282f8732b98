package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
[log]
json = true
debug = true

[database]
url = "postgres://localhost/jobscout"

[redis]
url = "redis://localhost:6379/0"

[embedding]
provider = "openai"
api_key = "sk-test"
model = "text-embedding-3-large"

[providers]
requests_per_second = 2.5
burst = 5

[providers.adzuna]
app_id = "id"
app_key = "key"
country = "gb"

[scheduler]
interval_hours = 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "postgres://localhost/jobscout", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, 2.5, cfg.Providers.RequestsPerSecond)
	assert.Equal(t, "gb", cfg.Providers.Adzuna.Country)
	assert.Equal(t, 12, cfg.Scheduler.IntervalHours)
	assert.True(t, cfg.AdzunaEnabled())
	assert.True(t, cfg.RemotiveEnabled())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEmbeddingProvider, cfg.Embedding.Provider)
	assert.Equal(t, DefaultIntervalHours, cfg.Scheduler.IntervalHours)
	assert.False(t, cfg.AdzunaEnabled())
	assert.True(t, cfg.RemotiveEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/jobscout")
	t.Setenv("ADZUNA_APP_ID", "env-id")
	t.Setenv("ADZUNA_APP_KEY", "env-key")

	path := writeConfig(t, `
[database]
url = "postgres://file/jobscout"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/jobscout", cfg.Database.URL)
	assert.True(t, cfg.AdzunaEnabled())
}

func TestLoad_InvalidEmbeddingProvider(t *testing.T) {
	path := writeConfig(t, `
[embedding]
provider = "acme"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "embedding.provider")
}

func TestLoad_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, `
[embedding]
provider = "openai"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "api_key")
}

func TestLoad_RemotiveDisabled(t *testing.T) {
	path := writeConfig(t, `
[providers.remotive]
enabled = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.RemotiveEnabled())
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[log`)

	_, err := Load(path)
	assert.Error(t, err)
}
