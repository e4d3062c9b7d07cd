package providers

import (
	"context"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
)

// ScheduleProvider fetches the schedule as date buckets.
// start and end are inclusive YYYY-MM-DD dates; providers return one bucket
// per date that has games, and may return games that fail validation.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error)
}

// StatsProvider fetches pitcher and team stat lines.
type StatsProvider interface {
	FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error)
	FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error)
	FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error)
}

// OddsProvider fetches current moneyline quotes.
type OddsProvider interface {
	FetchOdds(ctx context.Context) ([]odds.Quote, error)
}

// PropsProvider fetches pitcher prop lines for upstream events.
type PropsProvider interface {
	FetchPitcherProps(ctx context.Context, eventIDs []string) ([]odds.PitcherProp, error)
}

// DataProvider combines schedule and stats capabilities.
type DataProvider interface {
	ScheduleProvider
	StatsProvider
}
