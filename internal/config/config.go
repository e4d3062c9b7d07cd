package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoggingConfig controls log level and handler format.
type LoggingConfig struct {
	Level  string
	Format string
}

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Timezone     string
	SeasonStart  string // MM-DD opening day used to size the history window
	AdminToken   string
	MLBStats     MLBStatsConfig
	Odds         OddsConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
	Snapshots    SnapshotSyncConfig
	Logging      LoggingConfig
	Strategy     Strategy
}

// Load reads configuration from a .env file (when present) and environment
// variables with sensible defaults. It fails only when STRATEGY_FILE names a
// file that cannot be read or parsed.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	strategy, err := LoadStrategy(envOrDefault(envStrategyFile, ""))
	if err != nil {
		return Config{}, err
	}
	strategy.LookbackDays = intEnvOrDefault(envLookbackDays, strategy.LookbackDays)

	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Timezone:     envOrDefault(envTimezone, defaultTimezone),
		SeasonStart:  envOrDefault(envSeasonStart, defaultSeasonStart),
		AdminToken:   envOrDefault(envAdminToken, ""),
		MLBStats:     loadMLBStats(),
		Odds:         loadOdds(),
		Cache:        loadCache(),
		Metrics:      loadMetrics(),
		Snapshots:    loadSnapshotSync(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Strategy: strategy,
	}, nil
}
