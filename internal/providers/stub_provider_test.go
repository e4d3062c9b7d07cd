package providers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
)

// flakeyProvider fails its first `failures` calls across every method.
type flakeyProvider struct {
	failures int
	err      error
	calls    atomic.Int32
}

func (f *flakeyProvider) fail() error {
	if int(f.calls.Add(1)) <= f.failures {
		if f.err != nil {
			return f.err
		}
		return errors.New("boom")
	}
	return nil
}

func (f *flakeyProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []games.DateBucket{{Date: start, Games: []games.Game{{ID: "ok"}}}}, nil
}

func (f *flakeyProvider) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	if err := f.fail(); err != nil {
		return pitchers.GameLog{}, err
	}
	return pitchers.GameLog{PitcherID: pitcherID}, nil
}

func (f *flakeyProvider) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	if err := f.fail(); err != nil {
		return pitchers.SeasonLine{}, err
	}
	return pitchers.SeasonLine{PitcherID: pitcherID, Season: season, Strikeouts: 50, BattersFaced: 200}, nil
}

func (f *flakeyProvider) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	if err := f.fail(); err != nil {
		return pitchers.TeamBatting{}, err
	}
	return pitchers.TeamBatting{TeamID: teamID, Season: season, Strikeouts: 100, PlateAppearances: 400}, nil
}
