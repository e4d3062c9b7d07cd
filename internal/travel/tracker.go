package travel

import (
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
)

// TeamGameRecord is one team's view of a game, annotated with its travel situation.
type TeamGameRecord struct {
	GameID        string           `json:"gameId"`
	Date          string           `json:"date"`
	StartTime     string           `json:"startTime,omitempty"`
	Team          teams.Team       `json:"team"`
	Opponent      teams.Team       `json:"opponent"`
	Venue         string           `json:"venue"`
	IsHome        bool             `json:"isHome"`
	Won           *bool            `json:"won"`
	Status        games.GameStatus `json:"status"`
	Travel        Classification   `json:"travel"`
	OpponentLabel Label            `json:"opponentLabel"`
}

// ClassifiedGame pairs a game with both sides' records.
type ClassifiedGame struct {
	Game games.Game     `json:"game"`
	Home TeamGameRecord `json:"home"`
	Away TeamGameRecord `json:"away"`
}

// History is the result of one Track call. It is immutable once built.
type History struct {
	games  []ClassifiedGame
	index  map[string]int
	byTeam map[string][]TeamGameRecord
	teams  []teams.Team
}

type appearance struct {
	game   *games.Game
	isHome bool
}

type sideKey struct {
	gameID string
	teamID string
}

// Track partitions the games in buckets by team, orders each team's games
// chronologically and classifies every game against the one before it.
// Postponed and canceled games are not appearances. Buckets are expected to
// have passed games.Sanitize.
func Track(buckets []games.DateBucket) *History {
	var played []games.Game
	for _, bucket := range buckets {
		for _, g := range bucket.Games {
			if g.Played() {
				played = append(played, g)
			}
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		a, b := played[i], played[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return sequenceLess(a, b)
	})

	perTeam := make(map[string][]appearance)
	teamByID := make(map[string]teams.Team)
	for i := range played {
		g := &played[i]
		perTeam[g.HomeTeam.ID] = append(perTeam[g.HomeTeam.ID], appearance{game: g, isHome: true})
		perTeam[g.AwayTeam.ID] = append(perTeam[g.AwayTeam.ID], appearance{game: g, isHome: false})
		teamByID[g.HomeTeam.ID] = g.HomeTeam
		teamByID[g.AwayTeam.ID] = g.AwayTeam
	}

	labels := make(map[sideKey]Classification, len(played)*2)
	for teamID, list := range perTeam {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i].game, list[j].game
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return sequenceLess(*a, *b)
		})
		var prev Classification
		for i, cur := range list {
			var c Classification
			switch {
			case i == 0:
				c = Classification{Label: NoHistory}
			case list[i-1].game.Date == cur.game.Date:
				c = prev
			default:
				before := list[i-1]
				c = Classify(
					Appearance{Date: before.game.Date, Venue: before.game.Venue, IsHome: before.isHome},
					Appearance{Date: cur.game.Date, Venue: cur.game.Venue, IsHome: cur.isHome},
				)
			}
			labels[sideKey{gameID: cur.game.ID, teamID: teamID}] = c
			prev = c
		}
	}

	h := &History{
		games:  make([]ClassifiedGame, 0, len(played)),
		index:  make(map[string]int, len(played)),
		byTeam: make(map[string][]TeamGameRecord, len(perTeam)),
	}
	for _, g := range played {
		homeTravel := labels[sideKey{gameID: g.ID, teamID: g.HomeTeam.ID}]
		awayTravel := labels[sideKey{gameID: g.ID, teamID: g.AwayTeam.ID}]

		home := newRecord(g, true, homeTravel, awayTravel.Label)
		away := newRecord(g, false, awayTravel, homeTravel.Label)

		h.index[g.ID] = len(h.games)
		h.games = append(h.games, ClassifiedGame{Game: g, Home: home, Away: away})
	}

	for teamID, list := range perTeam {
		records := make([]TeamGameRecord, 0, len(list))
		for _, a := range list {
			cg := h.games[h.index[a.game.ID]]
			if a.isHome {
				records = append(records, cg.Home)
			} else {
				records = append(records, cg.Away)
			}
		}
		h.byTeam[teamID] = records
	}

	h.teams = make([]teams.Team, 0, len(teamByID))
	for _, t := range teamByID {
		h.teams = append(h.teams, t)
	}
	sort.Slice(h.teams, func(i, j int) bool {
		if h.teams[i].Name != h.teams[j].Name {
			return h.teams[i].Name < h.teams[j].Name
		}
		return h.teams[i].ID < h.teams[j].ID
	})
	return h
}

// sequenceLess orders games on the same date by doubleheader sequence when
// both carry one, else by id.
func sequenceLess(a, b games.Game) bool {
	if a.GameNumber > 0 && b.GameNumber > 0 && a.GameNumber != b.GameNumber {
		return a.GameNumber < b.GameNumber
	}
	return a.ID < b.ID
}

func newRecord(g games.Game, isHome bool, travel Classification, opponent Label) TeamGameRecord {
	team, opp := g.AwayTeam, g.HomeTeam
	if isHome {
		team, opp = g.HomeTeam, g.AwayTeam
	}
	rec := TeamGameRecord{
		GameID:        g.ID,
		Date:          g.Date,
		StartTime:     g.StartTime,
		Team:          team,
		Opponent:      opp,
		Venue:         g.Venue,
		IsHome:        isHome,
		Status:        g.Status,
		Travel:        travel,
		OpponentLabel: opponent,
	}
	if homeWon, ok := g.HomeWon(); ok {
		won := homeWon == isHome
		rec.Won = &won
	}
	return rec
}

// Games returns every classified game in chronological order.
func (h *History) Games() []ClassifiedGame {
	if h == nil {
		return []ClassifiedGame{}
	}
	out := make([]ClassifiedGame, len(h.games))
	copy(out, h.games)
	return out
}

// Game looks up a classified game by id.
func (h *History) Game(id string) (ClassifiedGame, bool) {
	if h == nil {
		return ClassifiedGame{}, false
	}
	i, ok := h.index[id]
	if !ok {
		return ClassifiedGame{}, false
	}
	return h.games[i], true
}

// Team returns one team's records in its own chronological order.
func (h *History) Team(teamID string) []TeamGameRecord {
	if h == nil {
		return []TeamGameRecord{}
	}
	out := make([]TeamGameRecord, len(h.byTeam[teamID]))
	copy(out, h.byTeam[teamID])
	return out
}

// Records flattens every game into its home and away records, game order preserved.
func (h *History) Records() []TeamGameRecord {
	if h == nil {
		return []TeamGameRecord{}
	}
	out := make([]TeamGameRecord, 0, len(h.games)*2)
	for _, g := range h.games {
		out = append(out, g.Home, g.Away)
	}
	return out
}

// Teams returns every team seen, sorted by name.
func (h *History) Teams() []teams.Team {
	if h == nil {
		return []teams.Team{}
	}
	out := make([]teams.Team, len(h.teams))
	copy(out, h.teams)
	return out
}

// LastAppearance returns the team's most recent record dated strictly before date.
func (h *History) LastAppearance(teamID, before string) (TeamGameRecord, bool) {
	if h == nil {
		return TeamGameRecord{}, false
	}
	recs := h.byTeam[teamID]
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].Date < before {
			return recs[i], true
		}
	}
	return TeamGameRecord{}, false
}
