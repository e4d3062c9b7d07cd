package mlbstats

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
)

func mapSchedule(resp scheduleResponse) []games.DateBucket {
	buckets := make([]games.DateBucket, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		mapped := make([]games.Game, 0, len(d.Games))
		for _, g := range d.Games {
			mapped = append(mapped, mapGame(g, d.Date))
		}
		buckets = append(buckets, games.NewDateBucket(d.Date, mapped))
	}
	return buckets
}

func mapGame(g gameResponse, bucketDate string) games.Game {
	date := g.OfficialDate
	if date == "" {
		date = bucketDate
	}
	out := games.Game{
		ID:                strconv.Itoa(g.GamePk),
		Date:              date,
		StartTime:         g.GameDate,
		Venue:             strings.TrimSpace(g.Venue.Name),
		HomeTeam:          mapTeam(g.Teams.Home.Team),
		AwayTeam:          mapTeam(g.Teams.Away.Team),
		Status:            mapStatus(g.Status),
		SeriesDescription: g.SeriesDescription,
		GameNumber:        int(g.GameNumber),
		DoubleHeader:      g.DoubleHeader == "Y" || g.DoubleHeader == "S",
		HomeProbable:      mapPitcher(g.Teams.Home.ProbablePitcher),
		AwayProbable:      mapPitcher(g.Teams.Away.ProbablePitcher),
		Meta: games.GameMeta{
			Provider:       providerName,
			Season:         g.Season,
			UpstreamGameID: g.GamePk,
		},
	}
	if g.GamePk == 0 {
		out.ID = ""
	}
	if g.GamesInSeries > 0 && g.SeriesGameNumber > 0 {
		out.Series = &games.SeriesPosition{Number: int(g.SeriesGameNumber), Total: int(g.GamesInSeries)}
	}
	if g.SeriesStatus != nil {
		out.SeriesStatus = &games.SeriesStatus{
			HomeWins: g.SeriesStatus.HomeWins,
			AwayWins: g.SeriesStatus.AwayWins,
			IsVersus: g.SeriesStatus.IsVersus,
		}
	}
	if home, away := g.Teams.Home.Score, g.Teams.Away.Score; home != nil && away != nil {
		out.Score = &games.Score{Home: *home, Away: *away}
	}
	return out
}

func mapTeam(t teamResponse) teams.Team {
	team := teams.Team{Name: t.Name, Abbreviation: t.Abbreviation}
	if t.ID != 0 {
		team.ID = strconv.Itoa(t.ID)
	}
	return team
}

func mapPitcher(p *personResponse) *games.Pitcher {
	if p == nil || p.ID == 0 {
		return nil
	}
	return &games.Pitcher{ID: strconv.Itoa(p.ID), Name: p.FullName}
}

func mapStatus(s statusResponse) games.GameStatus {
	detailed := strings.ToLower(s.DetailedState)
	switch {
	case strings.HasPrefix(detailed, "postponed"), strings.HasPrefix(detailed, "suspended"):
		return games.StatusPostponed
	case strings.HasPrefix(detailed, "cancelled"), strings.HasPrefix(detailed, "canceled"):
		return games.StatusCanceled
	}
	switch strings.ToLower(s.AbstractGameState) {
	case "final":
		return games.StatusFinal
	case "live":
		return games.StatusLive
	default:
		return games.StatusScheduled
	}
}

func mapGameLog(pitcherID string, resp statsResponse) pitchers.GameLog {
	log := pitchers.GameLog{PitcherID: pitcherID, Appearances: []pitchers.Appearance{}}
	for _, group := range resp.Stats {
		for _, split := range group.Splits {
			log.Appearances = append(log.Appearances, pitchers.Appearance{
				Date:           split.Date,
				Strikeouts:     int(split.Stat.StrikeOuts),
				BattersFaced:   int(split.Stat.BattersFaced),
				InningsPitched: split.Stat.InningsPitched,
				Outs:           int(split.Stat.Outs),
			})
		}
	}
	return log
}

func mapSeasonLine(pitcherID string, season int, resp statsResponse) pitchers.SeasonLine {
	line := pitchers.SeasonLine{PitcherID: pitcherID, Season: season}
	split, ok := firstSplit(resp, "pitching")
	if !ok {
		return line
	}
	line.Strikeouts = int(split.Stat.StrikeOuts)
	line.BattersFaced = int(split.Stat.BattersFaced)
	line.InningsPitched = split.Stat.InningsPitched
	line.GamesStarted = int(split.Stat.GamesStarted)
	line.Outs = int(split.Stat.Outs)
	line.Hits = int(split.Stat.Hits)
	line.Walks = int(max(split.Stat.BaseOnBalls, split.Stat.Walks))
	return line
}

func mapTeamBatting(teamID string, season int, resp statsResponse) pitchers.TeamBatting {
	batting := pitchers.TeamBatting{TeamID: teamID, Season: season}
	split, ok := firstSplit(resp, "hitting")
	if !ok {
		return batting
	}
	s := split.Stat
	batting.Strikeouts = int(s.StrikeOuts)
	batting.AtBats = int(s.AtBats)
	batting.Walks = int(max(s.BaseOnBalls, s.Walks))
	batting.HitByPitch = int(s.HitByPitch)
	batting.SacFlies = int(s.SacFlies)
	batting.SacBunts = int(s.SacBunts)
	batting.PlateAppearances = int(s.PlateAppearances)
	batting.OPS = float64(s.OPS)
	return batting
}

// firstSplit prefers the stat group named group and falls back to the first
// group that has any split.
func firstSplit(resp statsResponse, group string) (statSplit, bool) {
	for _, g := range resp.Stats {
		if strings.EqualFold(g.Group.DisplayName, group) && len(g.Splits) > 0 {
			return g.Splits[0], true
		}
	}
	for _, g := range resp.Stats {
		if len(g.Splits) > 0 {
			return g.Splits[0], true
		}
	}
	return statSplit{}, false
}
