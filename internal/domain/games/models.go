package games

import "github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusLive      GameStatus = "LIVE"
	StatusFinal     GameStatus = "FINAL"
	StatusPostponed GameStatus = "POSTPONED"
	StatusCanceled  GameStatus = "CANCELED"
)

// Score captures home and away runs.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// SeriesPosition places a game inside its series (game 3 of 3).
type SeriesPosition struct {
	Number int `json:"number"`
	Total  int `json:"total"`
}

// IsFinalGame reports whether the game closes out its series.
func (s *SeriesPosition) IsFinalGame() bool {
	return s != nil && s.Total > 0 && s.Number == s.Total
}

// SeriesStatus is the upstream running tally of the series before this game.
type SeriesStatus struct {
	HomeWins int  `json:"homeWins"`
	AwayWins int  `json:"awayWins"`
	IsVersus bool `json:"isVersus"`
}

// Pitcher identifies a probable starter.
type Pitcher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Provider       string `json:"provider,omitempty"`
	Season         string `json:"season,omitempty"`
	UpstreamGameID int    `json:"upstreamGameId,omitempty"`
}

// Game is the canonical game shape consumed by the travel, trends and picks packages.
type Game struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"`
	StartTime         string          `json:"startTime"`
	Venue             string          `json:"venue"`
	HomeTeam          teams.Team      `json:"homeTeam"`
	AwayTeam          teams.Team      `json:"awayTeam"`
	Status            GameStatus      `json:"status"`
	Score             *Score          `json:"score,omitempty"`
	Series            *SeriesPosition `json:"series,omitempty"`
	SeriesDescription string          `json:"seriesDescription,omitempty"`
	SeriesStatus      *SeriesStatus   `json:"seriesStatus,omitempty"`
	GameNumber        int             `json:"gameNumber,omitempty"`
	DoubleHeader      bool            `json:"doubleHeader,omitempty"`
	HomeProbable      *Pitcher        `json:"homeProbablePitcher,omitempty"`
	AwayProbable      *Pitcher        `json:"awayProbablePitcher,omitempty"`
	Meta              GameMeta        `json:"meta"`
}

// Played reports whether the game counts as an appearance for both teams.
func (g Game) Played() bool {
	return g.Status != StatusPostponed && g.Status != StatusCanceled
}

// HasResult reports whether the game is final with a decisive score.
func (g Game) HasResult() bool {
	return g.Status == StatusFinal && g.Score != nil && g.Score.Home != g.Score.Away
}

// HomeWon returns whether the home side won; ok is false without a result.
func (g Game) HomeWon() (won bool, ok bool) {
	if !g.HasResult() {
		return false, false
	}
	return g.Score.Home > g.Score.Away, true
}

// Lost reports whether teamID lost a game with a result.
func (g Game) Lost(teamID string) bool {
	homeWon, ok := g.HomeWon()
	if !ok {
		return false
	}
	switch teamID {
	case g.HomeTeam.ID:
		return !homeWon
	case g.AwayTeam.ID:
		return homeWon
	}
	return false
}

// Involves reports whether teamID is one of the two sides.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID
}

// Opponent returns the other side of teamID.
func (g Game) Opponent(teamID string) teams.Team {
	if g.HomeTeam.ID == teamID {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// DateBucket groups the games scheduled on one calendar date. It is the unit the fetch layer supplies.
type DateBucket struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewDateBucket builds a DateBucket payload; a nil game list becomes empty.
func NewDateBucket(date string, games []Game) DateBucket {
	if games == nil {
		games = []Game{}
	}
	return DateBucket{
		Date:  date,
		Games: games,
	}
}
