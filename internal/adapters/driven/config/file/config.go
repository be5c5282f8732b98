// Package file loads application configuration from a TOML file with
// environment overrides for credentials.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultConfigDir         = ".jobscout"
	DefaultConfigFile        = "config.toml"
	DefaultIntervalHours     = 6
	DefaultEmbeddingProvider = "ollama"
)

// Config is the full application configuration.
type Config struct {
	// Log controls the zap logger.
	Log LogConfig `toml:"log"`

	// Database selects the storage backend. An empty URL falls back to
	// the in-memory store.
	Database DatabaseConfig `toml:"database"`

	// Redis enables the profile-vector cache when a URL is set.
	Redis RedisConfig `toml:"redis"`

	// Embedding selects and configures the embedding backend.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Providers configures the job-board sources.
	Providers ProvidersConfig `toml:"providers"`

	// Hydrator enables the enrichment API when a URL is set.
	Hydrator HydratorConfig `toml:"hydrator"`

	// Scheduler tunes periodic discovery.
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// JSON switches from console to JSON encoding.
	JSON bool `toml:"json"`

	// Debug lowers the level to debug.
	Debug bool `toml:"debug"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	// URL is a postgres connection string. Overridden by DATABASE_URL.
	URL string `toml:"url"`
}

// RedisConfig enables the optional profile-vector cache.
type RedisConfig struct {
	// URL is a redis connection string. Overridden by REDIS_URL.
	URL string `toml:"url"`
}

// EmbeddingConfig selects the embedding backend.
type EmbeddingConfig struct {
	// Provider is "ollama", "openai" or "none".
	Provider string `toml:"provider"`

	// Model overrides the backend's default model.
	Model string `toml:"model"`

	// BaseURL overrides the backend's endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates the openai backend. Overridden by
	// OPENAI_API_KEY.
	APIKey string `toml:"api_key"`

	// Dimensions overrides the model's vector size.
	Dimensions int `toml:"dimensions"`
}

// ProvidersConfig configures the job-board sources.
type ProvidersConfig struct {
	Adzuna   AdzunaConfig   `toml:"adzuna"`
	Remotive RemotiveConfig `toml:"remotive"`

	// RequestsPerSecond and Burst set the shared per-provider rate
	// limit. Zero disables limiting.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// AdzunaConfig holds Adzuna credentials. The provider is enabled only
// when both credentials are present.
type AdzunaConfig struct {
	// AppID and AppKey are overridden by ADZUNA_APP_ID / ADZUNA_APP_KEY.
	AppID   string `toml:"app_id"`
	AppKey  string `toml:"app_key"`
	Country string `toml:"country"`
}

// RemotiveConfig configures the keyless Remotive provider.
type RemotiveConfig struct {
	// Enabled defaults to true; set false to skip the provider.
	Enabled *bool `toml:"enabled"`
}

// HydratorConfig configures the optional posting enrichment API.
type HydratorConfig struct {
	// URL is the enrichment API root. Empty disables hydration.
	URL string `toml:"url"`

	// Token is an optional bearer token. Overridden by HYDRATOR_TOKEN.
	Token string `toml:"token"`
}

// SchedulerConfig tunes periodic discovery.
type SchedulerConfig struct {
	// IntervalHours is the cycle period (default 6).
	IntervalHours int `toml:"interval_hours"`
}

// Load reads the config file, applies environment overrides, fills
// defaults and validates. A missing file is not an error: env and
// defaults alone are a valid configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults + env only.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		c.Providers.Adzuna.AppID = v
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		c.Providers.Adzuna.AppKey = v
	}
	if v := os.Getenv("HYDRATOR_TOKEN"); v != "" {
		c.Hydrator.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = DefaultEmbeddingProvider
	}
	if c.Scheduler.IntervalHours <= 0 {
		c.Scheduler.IntervalHours = DefaultIntervalHours
	}
}

// Validate fails fast on configurations that cannot be wired.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "ollama", "openai", "none":
	default:
		return fmt.Errorf("embedding.provider must be ollama, openai or none, got %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "openai" && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.provider openai requires api_key or OPENAI_API_KEY")
	}
	if c.Providers.RequestsPerSecond < 0 {
		return fmt.Errorf("providers.requests_per_second must not be negative")
	}
	return nil
}

// RemotiveEnabled reports whether the Remotive provider should be
// registered.
func (c *Config) RemotiveEnabled() bool {
	return c.Providers.Remotive.Enabled == nil || *c.Providers.Remotive.Enabled
}

// AdzunaEnabled reports whether Adzuna credentials are present.
func (c *Config) AdzunaEnabled() bool {
	return c.Providers.Adzuna.AppID != "" && c.Providers.Adzuna.AppKey != ""
}
