package config

import "time"

const (
	envPort             = "PORT"
	envPollInterval     = "POLL_INTERVAL"
	envProvider         = "PROVIDER"
	envTimezone         = "TIMEZONE"
	envSeasonStart      = "SEASON_START"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken       = "ADMIN_TOKEN"
	envSnapshotSync     = "SNAPSHOT_SYNC_ENABLED"
	envSnapshotSchedule = "SNAPSHOT_SYNC_SCHEDULE"
	envSnapshotFolder   = "SNAPSHOT_FOLDER"
	envSnapshotRetain   = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotRefresh  = "SNAPSHOT_REFRESH_DAYS"
	envMLBBaseURL       = "MLB_STATS_BASE_URL"
	envMLBTimeout       = "MLB_STATS_TIMEOUT"
	envPitcherDelay     = "PITCHER_REQUEST_DELAY"
	envMLBMinInterval   = "MLB_STATS_MIN_INTERVAL"
	envMLBRetryAttempts = "MLB_STATS_RETRY_ATTEMPTS"
	envMLBRetryBackoff  = "MLB_STATS_RETRY_BACKOFF"
	envOddsAPIKey       = "ODDS_API_KEY"
	envOddsBaseURL      = "ODDS_API_BASE_URL"
	envOddsPlayerProps  = "ODDS_PLAYER_PROPS"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envStatCacheTTL     = "STAT_CACHE_TTL"
	envStrategyFile     = "STRATEGY_FILE"
	envLookbackDays     = "LOOKBACK_DAYS"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultPort = "4000"
	// statsapi has no published quota; a few minutes keeps live scores fresh without hammering it.
	defaultPollInterval = 3 * Duration(time.Minute)
	defaultProvider     = "fixture"
	defaultTimezone     = "America/New_York"
	defaultSeasonStart  = "03-27"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "mlb-travel-picks"

	defaultSnapshotSync     = true
	defaultSnapshotSchedule = "0 0 9 * * *"
	defaultSnapshotFolder   = "data/snapshots"
	defaultSnapshotRetain   = 400
	defaultSnapshotRefresh  = 3

	defaultMLBBaseURL       = "https://statsapi.mlb.com/api/v1"
	defaultMLBTimeout       = 15 * Duration(time.Second)
	defaultPitcherDelay     = 100 * Duration(time.Millisecond)
	defaultMLBMinInterval   = 25 * Duration(time.Millisecond)
	defaultMLBRetryAttempts = 3
	defaultMLBRetryBackoff  = 200 * Duration(time.Millisecond)
	defaultOddsBaseURL      = "https://api.the-odds-api.com/v4"
	defaultStatCacheTTL     = 6 * Duration(time.Hour)

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)
