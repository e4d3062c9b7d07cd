// Package krate screens games for strikeout-rate unders: both probable
// starters striking out at least a threshold share of the batters they face.
package krate

import (
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// Source records where a pitcher's rate came from.
type Source string

const (
	SourceRecent Source = "recent"
	SourceSeason Source = "season"
	SourceNone   Source = "none"
)

// Params holds the screen's thresholds and display constants.
type Params struct {
	Threshold         float64
	HighThreshold     float64
	MinAppearances    int
	LookbackDays      int
	DefaultTeamRate   float64
	AssumedTotal      float64
	AssumedFirstFive  float64
	RecentAppearances int
}

// DefaultParams returns the stock screen.
func DefaultParams() Params {
	return Params{
		Threshold:         0.25,
		HighThreshold:     0.30,
		MinAppearances:    3,
		LookbackDays:      30,
		DefaultTeamRate:   0.225,
		AssumedTotal:      8.5,
		AssumedFirstFive:  4.5,
		RecentAppearances: 5,
	}
}

// PitcherRate is a starter's strikeout rate and the sample behind it.
type PitcherRate struct {
	PitcherID    string                `json:"pitcherId"`
	Name         string                `json:"name"`
	Rate         float64               `json:"kRate"`
	Strikeouts   int                   `json:"strikeouts"`
	BattersFaced int                   `json:"battersFaced"`
	Appearances  int                   `json:"appearances"`
	RecentGames  []pitchers.Appearance `json:"recentGames"`
	Source       Source                `json:"source"`
}

// WindowStart returns the first date of the lookback window ending at asOf.
func WindowStart(asOf string, lookbackDays int) (string, error) {
	return timeutil.AddDays(asOf, -lookbackDays)
}

// ComputePitcherRate sums strikeouts over batters faced for appearances from
// WindowStart through asOf, both days included. With no batters faced in the
// window it falls back to the season line, and with neither the source is
// SourceNone. RecentGames holds the latest appearances, newest first.
func ComputePitcherRate(log pitchers.GameLog, season *pitchers.SeasonLine, asOf string, p Params) PitcherRate {
	rate := PitcherRate{PitcherID: log.PitcherID, RecentGames: []pitchers.Appearance{}, Source: SourceNone}
	start, err := WindowStart(asOf, p.LookbackDays)
	if err != nil {
		start = ""
	}

	var window []pitchers.Appearance
	for _, a := range log.Appearances {
		if !a.Counts() || a.Date > asOf || (start != "" && a.Date < start) {
			continue
		}
		window = append(window, a)
		rate.Strikeouts += a.Strikeouts
		rate.BattersFaced += a.BattersFaced
	}
	sort.SliceStable(window, func(i, j int) bool { return window[i].Date > window[j].Date })
	rate.Appearances = len(window)
	if n := min(len(window), p.RecentAppearances); n > 0 {
		rate.RecentGames = append(rate.RecentGames, window[:n]...)
	}

	if rate.BattersFaced > 0 {
		rate.Rate = float64(rate.Strikeouts) / float64(rate.BattersFaced)
		rate.Source = SourceRecent
		return rate
	}

	if season != nil && season.BattersFaced > 0 {
		if rate.PitcherID == "" {
			rate.PitcherID = season.PitcherID
		}
		rate.Strikeouts = season.Strikeouts
		rate.BattersFaced = season.BattersFaced
		rate.Rate = float64(season.Strikeouts) / float64(season.BattersFaced)
		rate.Source = SourceSeason
	}
	return rate
}

// TeamStrikeoutRate is a lineup's strikeouts per plate appearance. A missing
// line or one without plate appearances yields def.
func TeamStrikeoutRate(b *pitchers.TeamBatting, def float64) float64 {
	if b == nil {
		return def
	}
	pa := b.EffectivePlateAppearances()
	if pa <= 0 {
		return def
	}
	return float64(b.Strikeouts) / float64(pa)
}
