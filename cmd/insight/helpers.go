package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cache"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/engine"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/llm"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/storage"
)

// resultCache is shared by every command in the process so data-mutating
// commands can purge reasoning results the matching commands may have cached.
var resultCache *cache.ResultCache

func sharedResultCache() *cache.ResultCache {
	if resultCache == nil {
		resultCache = cache.New(viper.GetDuration("engine.cache_ttl"))
	}
	return resultCache
}

// purgeCreatorResults drops cached insights and matches for creators whose
// sale history just changed. Returns the number of entries removed.
func purgeCreatorResults(creators []model.Creator) int {
	removed := 0
	for _, creator := range creators {
		removed += sharedResultCache().InvalidateCreator(creator.ID)
	}
	return removed
}

// openStore opens the reference-data database and brings its schema up to
// date.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("storage.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "insight", "insight.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// newOrchestrator wires the reasoning gateway, result cache, and engine from
// configuration. Shared by every command that reasons about data.
func newOrchestrator() (*engine.Orchestrator, error) {
	cfg, err := reasoningConfig()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoning client: %w", err)
	}

	gateway := llm.NewGateway(client, cfg, slog.Default())

	return engine.New(gateway, sharedResultCache(), slog.Default()), nil
}

// reasoningConfig reads the provider configuration, falling back to the
// provider's conventional environment variable for the API key.
func reasoningConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "anthropic"
	}

	cfg := llm.Config{
		Provider:   provider,
		Model:      viper.GetString("llm.model"),
		MaxTokens:  viper.GetInt("llm.max_tokens"),
		MaxRetries: viper.GetInt("llm.max_retries"),
		RetryDelay: viper.GetDuration("llm.retry_delay"),
		Timeout:    viper.GetDuration("llm.timeout"),
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	switch provider {
	case "anthropic":
		cfg.APIKey = viper.GetString("llm.anthropic_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
	case "openai":
		cfg.APIKey = viper.GetString("llm.openai_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			return cfg, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
	}

	return cfg, nil
}
