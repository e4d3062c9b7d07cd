package mlbstats

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// Config controls how the statsapi client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches schedules and stat lines from statsapi.mlb.com and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a statsapi client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchSchedule retrieves every regular-season game between start and end
// inclusive, one request per scheduleChunkDays.
func (c *Client) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]games.DateBucket, 0, len(dates))
	for i := 0; i < len(dates); i += scheduleChunkDays {
		last := min(i+scheduleChunkDays, len(dates)) - 1
		q := url.Values{}
		q.Set("sportId", sportMLB)
		q.Set("startDate", dates[i])
		q.Set("endDate", dates[last])
		q.Set("hydrate", scheduleHydrate)

		var payload scheduleResponse
		if err := c.getJSON(ctx, "/schedule", q, &payload); err != nil {
			return nil, fmt.Errorf("schedule %s..%s: %w", dates[i], dates[last], err)
		}
		out = append(out, mapSchedule(payload)...)
	}
	return out, nil
}

// FetchGameLog retrieves a pitcher's regular-season appearances between start and end.
func (c *Client) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	q := url.Values{}
	q.Set("stats", "gameLog")
	q.Set("group", "pitching")
	q.Set("gameType", gameTypeRegular)
	q.Set("startDate", start)
	q.Set("endDate", end)

	var payload statsResponse
	if err := c.getJSON(ctx, "/people/"+url.PathEscape(pitcherID)+"/stats", q, &payload); err != nil {
		return pitchers.GameLog{}, fmt.Errorf("game log %s: %w", pitcherID, err)
	}
	return mapGameLog(pitcherID, payload), nil
}

// FetchSeasonLine retrieves a pitcher's aggregate line for season.
func (c *Client) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	q := url.Values{}
	q.Set("stats", "season")
	q.Set("group", "pitching")
	q.Set("season", strconv.Itoa(season))
	q.Set("gameType", gameTypeRegular)

	var payload statsResponse
	if err := c.getJSON(ctx, "/people/"+url.PathEscape(pitcherID)+"/stats", q, &payload); err != nil {
		return pitchers.SeasonLine{}, fmt.Errorf("season line %s: %w", pitcherID, err)
	}
	return mapSeasonLine(pitcherID, season, payload), nil
}

// FetchTeamBatting retrieves a team's season hitting line.
func (c *Client) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	q := url.Values{}
	q.Set("stats", "season")
	q.Set("group", "hitting")
	q.Set("season", strconv.Itoa(season))
	q.Set("gameType", gameTypeRegular)

	var payload statsResponse
	if err := c.getJSON(ctx, "/teams/"+url.PathEscape(teamID)+"/stats", q, &payload); err != nil {
		return pitchers.TeamBatting{}, fmt.Errorf("team batting %s: %w", teamID, err)
	}
	return mapTeamBatting(teamID, season, payload), nil
}
