package mlbstats

import "time"

const (
	providerName       = "mlbstats"
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 15 * time.Second
	// statsapi rejects very long schedule ranges; a season is fetched in chunks.
	scheduleChunkDays = 30
	scheduleHydrate   = "team,venue,linescore,seriesStatus,probablePitcher"
	sportMLB          = "1"
	gameTypeRegular   = "R"
	maxErrorBody      = 512
)
