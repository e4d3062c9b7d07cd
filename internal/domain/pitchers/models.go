package pitchers

import (
	"strconv"
	"strings"
)

// Appearance is one game-log line for a pitcher.
type Appearance struct {
	Date           string `json:"date"`
	Strikeouts     int    `json:"strikeouts"`
	BattersFaced   int    `json:"battersFaced"`
	InningsPitched string `json:"inningsPitched,omitempty"`
	Outs           int    `json:"outs,omitempty"`
}

// Counts reports whether the appearance carries usable batters-faced data.
func (a Appearance) Counts() bool {
	return a.BattersFaced > 0
}

// OutsRecorded prefers the reported outs and falls back to the innings line.
func (a Appearance) OutsRecorded() int {
	if a.Outs > 0 {
		return a.Outs
	}
	return OutsFromInnings(a.InningsPitched)
}

// OutsFromInnings converts baseball innings notation, where "5.2" is five
// innings and two outs, into outs. Anything unparseable is zero.
func OutsFromInnings(ip string) int {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return 0
	}
	whole, frac, _ := strings.Cut(ip, ".")
	innings, err := strconv.Atoi(whole)
	if err != nil || innings < 0 {
		return 0
	}
	extra := 0
	if frac != "" {
		extra, err = strconv.Atoi(frac)
		if err != nil || extra < 0 || extra > 2 {
			return 0
		}
	}
	return innings*3 + extra
}

// GameLog is a pitcher's appearances over a requested window, newest last.
type GameLog struct {
	PitcherID   string       `json:"pitcherId"`
	Appearances []Appearance `json:"appearances"`
}

// SeasonLine is a pitcher's aggregate season pitching line.
type SeasonLine struct {
	PitcherID      string `json:"pitcherId"`
	Season         int    `json:"season"`
	Strikeouts     int    `json:"strikeouts"`
	BattersFaced   int    `json:"battersFaced"`
	InningsPitched string `json:"inningsPitched,omitempty"`
	GamesStarted   int    `json:"gamesStarted,omitempty"`
	Outs           int    `json:"outs,omitempty"`
	Hits           int    `json:"hits,omitempty"`
	Walks          int    `json:"walks,omitempty"`
}

// OutsRecorded prefers the reported outs and falls back to the innings line.
func (l SeasonLine) OutsRecorded() int {
	if l.Outs > 0 {
		return l.Outs
	}
	return OutsFromInnings(l.InningsPitched)
}

// OutsPerStart is the season's average outs per game started, zero without starts.
func (l SeasonLine) OutsPerStart() float64 {
	outs := l.OutsRecorded()
	if l.GamesStarted <= 0 || outs <= 0 {
		return 0
	}
	return float64(outs) / float64(l.GamesStarted)
}

// WHIP is walks plus hits per inning pitched, zero without a recorded out.
func (l SeasonLine) WHIP() float64 {
	outs := l.OutsRecorded()
	if outs <= 0 {
		return 0
	}
	return float64(l.Hits+l.Walks) / (float64(outs) / 3)
}

// TeamBatting is a team's season hitting line, used for its strikeout rate as batters.
type TeamBatting struct {
	TeamID           string  `json:"teamId"`
	Season           int     `json:"season"`
	Strikeouts       int     `json:"strikeouts"`
	AtBats           int     `json:"atBats"`
	Walks            int     `json:"walks"`
	HitByPitch       int     `json:"hitByPitch"`
	SacFlies         int     `json:"sacFlies"`
	SacBunts         int     `json:"sacBunts"`
	PlateAppearances int     `json:"plateAppearances"`
	OPS              float64 `json:"ops,omitempty"`
}

// EffectivePlateAppearances prefers the summed components and falls back to
// the reported figure when it is larger.
func (b TeamBatting) EffectivePlateAppearances() int {
	return max(b.AtBats+b.Walks+b.HitByPitch+b.SacFlies+b.SacBunts, b.PlateAppearances)
}
