// Package cli implements the jobscout command-line driver.
//
// Commands are thin: they parse flags, call a driving port and format
// the result. All wiring (config, storage, providers, services) happens
// once in initApp before the first command runs.
package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rediscache "github.com/jobscout-dev/jobscout/internal/adapters/driven/cache/redis"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/config/file"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/embedding/ollama"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/embedding/openai"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/eventbus"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/hydrator"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/storage/memory"
	"github.com/jobscout-dev/jobscout/internal/adapters/driven/storage/postgres"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
	"github.com/jobscout-dev/jobscout/internal/core/services"
	"github.com/jobscout-dev/jobscout/internal/logger"
	"github.com/jobscout-dev/jobscout/internal/providers"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	cfgPath     string
	debugFlag   bool
	jsonLogFlag bool
)

// Wired application state. Commands nil-check the service they need so
// tests can inject mocks without running initApp.
var (
	appConfig   *file.Config
	appLogger   *zap.Logger
	discoverer  driving.Discoverer
	ingestor    driving.Ingestor
	scorer      driving.Scorer
	recommender driving.Recommender
	rescorer    *services.Rescorer
	scheduler   *services.Scheduler
	profiles    driven.ProfileStore
	bus         driven.EventBus

	pgStore     *postgres.Store
	redisClient *redis.Client
	embedder    driven.EmbeddingService
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job posting discovery and scoring",
	Long: `Jobscout discovers job postings from multiple boards, deduplicates
and persists them per user, and scores each posting against the user's
candidate profile using embedding similarity.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.jobscout/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogFlag, "json-log", false, "log as JSON instead of console output")
}

// Execute runs the root command and tears down whatever initApp built.
func Execute() error {
	defer closeApp()
	return rootCmd.Execute()
}

// initApp loads config and wires storage, providers and services.
// Version and help never need the full application.
func initApp(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	// Already wired, either by a previous run or by a test injecting
	// its own services.
	if discoverer != nil {
		return nil
	}

	cfg, err := file.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if debugFlag {
		cfg.Log.Debug = true
	}
	if jsonLogFlag {
		cfg.Log.JSON = true
	}
	appConfig = cfg

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	appLogger = log

	ctx := context.Background()

	var (
		postingStore  driven.PostingStore
		matchStore    driven.MatchStore
		criteriaStore driven.CriteriaStore
		attemptStore  driven.AttemptStore
	)
	if cfg.Database.URL != "" {
		store, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return fmt.Errorf("migrate database: %w", err)
		}
		pgStore = store
		postingStore = store.Postings()
		matchStore = store.Matches()
		criteriaStore = store.Criteria()
		attemptStore = store.Attempts()
		profiles = store.Profiles()
	} else {
		log.Warn("no database configured, state will not survive this process")
		postingStore = memory.NewPostingStore()
		matchStore = memory.NewMatchStore()
		criteriaStore = memory.NewCriteriaStore()
		attemptStore = memory.NewAttemptStore()
		profiles = memory.NewProfileStore()
	}

	var cache driven.ProfileVectorCache
	if cfg.Redis.URL != "" {
		client, err := rediscache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
		cache = rediscache.New(client, 0)
	}

	switch cfg.Embedding.Provider {
	case "openai":
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
		if err != nil {
			return fmt.Errorf("create embedding service: %w", err)
		}
		embedder = svc
	case "ollama":
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	}

	var hyd driven.Hydrator
	if cfg.Hydrator.URL != "" {
		hyd, err = hydrator.New(hydrator.Config{
			BaseURL: cfg.Hydrator.URL,
			Token:   cfg.Hydrator.Token,
		})
		if err != nil {
			return fmt.Errorf("create hydrator: %w", err)
		}
	}

	registry := providers.NewRegistry()
	if cfg.AdzunaEnabled() {
		adzuna, err := providers.NewAdzuna(providers.AdzunaConfig{
			AppID:   cfg.Providers.Adzuna.AppID,
			AppKey:  cfg.Providers.Adzuna.AppKey,
			Country: cfg.Providers.Adzuna.Country,
		})
		if err != nil {
			return fmt.Errorf("create adzuna provider: %w", err)
		}
		registry.Register(providers.WithRateLimit(adzuna, cfg.Providers.RequestsPerSecond, cfg.Providers.Burst))
	}
	if cfg.RemotiveEnabled() {
		remotive := providers.NewRemotive(providers.RemotiveConfig{})
		registry.Register(providers.WithRateLimit(remotive, cfg.Providers.RequestsPerSecond, cfg.Providers.Burst))
	}

	bus = eventbus.New(log)

	ingest := services.NewIngestService(postingStore, hyd, embedder, log)
	ingestor = ingest
	scorer = services.NewScoringService(postingStore, matchStore, profiles, embedder, cache, nil, log)
	discoverer = services.NewDiscoveryService(registry, attemptStore, ingest, bus, services.DiscoveryConfig{}, log)
	recommender = services.NewRecommendService(postingStore, matchStore, criteriaStore)
	rescorer = services.NewRescorer(scorer, profiles, log)
	rescorer.Register(bus)
	scheduler = services.NewScheduler(criteriaStore, discoverer, cfg.Scheduler.IntervalHours, log)

	return nil
}

// closeApp releases everything initApp built, in reverse order.
func closeApp() {
	if bus != nil {
		_ = bus.Close()
	}
	if embedder != nil {
		_ = embedder.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if pgStore != nil {
		pgStore.Close()
	}
	if appLogger != nil {
		_ = appLogger.Sync()
	}
}
