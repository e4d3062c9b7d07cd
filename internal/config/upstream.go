package config

import "time"

// MLBStatsConfig controls how we talk to statsapi.mlb.com.
type MLBStatsConfig struct {
	BaseURL string
	Timeout time.Duration
	// PitcherRequestDelay spaces per-pitcher stat lookups during K-rate collection.
	PitcherRequestDelay time.Duration
	// MinInterval is the floor between any two upstream calls; zero disables it.
	MinInterval   time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

// OddsConfig controls the optional moneyline quote lookup. An empty APIKey disables it.
// PlayerProps adds one outs-recorded lookup per matched event, which costs quota.
type OddsConfig struct {
	APIKey      string
	BaseURL     string
	PlayerProps bool
}

// CacheConfig selects the stat lookup cache. An empty RedisAddr keeps it in memory.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

func loadMLBStats() MLBStatsConfig {
	return MLBStatsConfig{
		BaseURL:             envOrDefault(envMLBBaseURL, defaultMLBBaseURL),
		Timeout:             durationEnvOrDefault(envMLBTimeout, defaultMLBTimeout),
		PitcherRequestDelay: durationEnvOrDefault(envPitcherDelay, defaultPitcherDelay),
		MinInterval:         durationEnvOrDefault(envMLBMinInterval, defaultMLBMinInterval),
		RetryAttempts:       intEnvOrDefault(envMLBRetryAttempts, defaultMLBRetryAttempts),
		RetryBackoff:        durationEnvOrDefault(envMLBRetryBackoff, defaultMLBRetryBackoff),
	}
}

func loadOdds() OddsConfig {
	return OddsConfig{
		APIKey:      envOrDefault(envOddsAPIKey, ""),
		BaseURL:     envOrDefault(envOddsBaseURL, defaultOddsBaseURL),
		PlayerProps: boolEnvOrDefault(envOddsPlayerProps, false),
	}
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisAddr:     envOrDefault(envRedisAddr, ""),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       nonNegativeIntEnvOrDefault(envRedisDB, 0),
		TTL:           durationEnvOrDefault(envStatCacheTTL, defaultStatCacheTTL),
	}
}
