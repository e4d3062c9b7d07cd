package odds

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
)

// MatchWindow is how far a quote's commence time may drift from a game's
// scheduled start and still be treated as the same game.
const MatchWindow = 15 * time.Minute

// Quote is the best moneyline available for one upstream event.
// A zero price means no bookmaker offered that side.
type Quote struct {
	EventID      string `json:"eventId"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	CommenceTime string `json:"commenceTime"`
	HomePrice    int    `json:"homePrice,omitempty"`
	AwayPrice    int    `json:"awayPrice,omitempty"`
}

// Line is a quote attached to a scheduled game.
type Line struct {
	GameID    string `json:"gameId"`
	EventID   string `json:"eventId,omitempty"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomePrice int    `json:"homePrice,omitempty"`
	AwayPrice int    `json:"awayPrice,omitempty"`
	Home      string `json:"home,omitempty"`
	Away      string `json:"away,omitempty"`
}

// Better reports whether candidate is a shorter price than current.
// Zero is "no price" and always loses.
func Better(candidate, current int) bool {
	if candidate == 0 {
		return false
	}
	return current == 0 || abs(candidate) < abs(current)
}

// FormatAmerican renders an American price with an explicit plus sign for
// underdogs. Zero renders as an empty string.
func FormatAmerican(price int) string {
	switch {
	case price == 0:
		return ""
	case price > 0:
		return "+" + strconv.Itoa(price)
	default:
		return strconv.Itoa(price)
	}
}

// Match pairs each game with the first quote naming the same home and away
// teams whose commence time is within MatchWindow of the game's start.
// Games without a match are left out of the result.
func Match(gs []games.Game, quotes []Quote) map[string]Line {
	out := make(map[string]Line)
	for _, g := range gs {
		start, err := time.Parse(time.RFC3339, g.StartTime)
		if err != nil {
			continue
		}
		for _, q := range quotes {
			if q.HomeTeam != g.HomeTeam.Name || q.AwayTeam != g.AwayTeam.Name {
				continue
			}
			commence, err := time.Parse(time.RFC3339, q.CommenceTime)
			if err != nil {
				continue
			}
			if d := commence.Sub(start); d > MatchWindow || d < -MatchWindow {
				continue
			}
			out[g.ID] = Line{
				GameID:    g.ID,
				EventID:   q.EventID,
				HomeTeam:  q.HomeTeam,
				AwayTeam:  q.AwayTeam,
				HomePrice: q.HomePrice,
				AwayPrice: q.AwayPrice,
				Home:      FormatAmerican(q.HomePrice),
				Away:      FormatAmerican(q.AwayPrice),
			}
			break
		}
	}
	return out
}

// EventIDs returns the upstream event ids behind matched lines, sorted.
func EventIDs(lines map[string]Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.EventID != "" {
			out = append(out, l.EventID)
		}
	}
	sort.Strings(out)
	return out
}

// MarketPitcherOuts is the upstream player-prop market for outs recorded.
const MarketPitcherOuts = "pitcher_outs"

// PitcherProp is the over/under line on one pitcher for one event. Prices
// are the best available per side at Point.
type PitcherProp struct {
	EventID    string  `json:"eventId"`
	Market     string  `json:"market"`
	Pitcher    string  `json:"pitcher"`
	Point      float64 `json:"point"`
	OverPrice  int     `json:"overPrice,omitempty"`
	UnderPrice int     `json:"underPrice,omitempty"`
	Bookmaker  string  `json:"bookmaker,omitempty"`
}

// FindProp returns the prop for pitcher in event. Names compare without case;
// when no full name matches, a surname shared by exactly one prop is accepted.
func FindProp(props []PitcherProp, eventID, market, pitcher string) (PitcherProp, bool) {
	name := strings.TrimSpace(pitcher)
	if name == "" || eventID == "" {
		return PitcherProp{}, false
	}
	var bySurname []PitcherProp
	surname := lastWord(name)
	for _, p := range props {
		if p.EventID != eventID || p.Market != market {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(p.Pitcher), name) {
			return p, true
		}
		if strings.EqualFold(lastWord(p.Pitcher), surname) {
			bySurname = append(bySurname, p)
		}
	}
	if len(bySurname) == 1 {
		return bySurname[0], true
	}
	return PitcherProp{}, false
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
