package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy holds the tunable constants of the pick strategies. Every field has
// a default; a YAML file only needs the keys it overrides.
type Strategy struct {
	LookbackDays int              `yaml:"lookback_days"`
	KRate        KRateStrategy    `yaml:"krate"`
	Outs         OutsStrategy     `yaml:"outs"`
	WeakTeam     WeakTeamStrategy `yaml:"weak_team"`
	Sweep        SweepStrategy    `yaml:"sweep"`
}

// KRateStrategy tunes the strikeout-rate unders screen.
type KRateStrategy struct {
	Threshold         float64 `yaml:"threshold"`
	HighThreshold     float64 `yaml:"high_threshold"`
	MinAppearances    int     `yaml:"min_appearances"`
	LookbackDays      int     `yaml:"lookback_days"`
	DefaultTeamRate   float64 `yaml:"default_team_rate"`
	AssumedTotal      float64 `yaml:"assumed_total"`
	AssumedFirstFive  float64 `yaml:"assumed_first_five_total"`
	RecentAppearances int     `yaml:"recent_appearances"`
}

// OutsStrategy tunes the starter outs projection.
type OutsStrategy struct {
	Baseline       float64 `yaml:"baseline"`
	RecentGames    int     `yaml:"recent_games"`
	MinRecentGames int     `yaml:"min_recent_games"`
	RecentWeight   float64 `yaml:"recent_weight"`
	LeagueOPS      float64 `yaml:"league_ops"`
	OPSWeight      float64 `yaml:"ops_weight"`
	LeagueWHIP     float64 `yaml:"league_whip"`
	WHIPWeight     float64 `yaml:"whip_weight"`
	HomeEdge       float64 `yaml:"home_edge"`
	HighKRate      float64 `yaml:"high_k_rate"`
	GoodKRate      float64 `yaml:"good_k_rate"`
	LowKRate       float64 `yaml:"low_k_rate"`
	MinEdge        float64 `yaml:"min_edge"`
	MinOuts        float64 `yaml:"min_outs"`
	MaxOuts        float64 `yaml:"max_outs"`
}

// WeakTeamStrategy designates the team faded on the run line.
type WeakTeamStrategy struct {
	TeamID     string `yaml:"team_id"`
	Spread     string `yaml:"spread"`
	HomeReason string `yaml:"home_reason"`
	AwayReason string `yaml:"away_reason"`
}

// SweepStrategy tunes the fade-the-sweep rule and its backtest.
type SweepStrategy struct {
	DoubleheaderRule bool    `yaml:"doubleheader_rule"`
	BacktestOdds     float64 `yaml:"backtest_odds"`
	BacktestStake    float64 `yaml:"backtest_stake"`
}

// DefaultStrategy returns the built-in strategy constants.
func DefaultStrategy() Strategy {
	return Strategy{
		LookbackDays: 7,
		KRate: KRateStrategy{
			Threshold:         0.25,
			HighThreshold:     0.30,
			MinAppearances:    3,
			LookbackDays:      30,
			DefaultTeamRate:   0.225,
			AssumedTotal:      8.5,
			AssumedFirstFive:  4.5,
			RecentAppearances: 5,
		},
		Outs: OutsStrategy{
			Baseline:       15,
			RecentGames:    5,
			MinRecentGames: 3,
			RecentWeight:   0.4,
			LeagueOPS:      0.750,
			OPSWeight:      6,
			LeagueWHIP:     1.30,
			WHIPWeight:     3,
			HomeEdge:       0.8,
			HighKRate:      0.28,
			GoodKRate:      0.24,
			LowKRate:       0.18,
			MinEdge:        1.5,
			MinOuts:        3,
			MaxOuts:        27,
		},
		WeakTeam: WeakTeamStrategy{
			TeamID:     "115",
			Spread:     "-1.5",
			HomeReason: "Rockies at home (Coors Field effect)",
			AwayReason: "Rockies on the road (historically poor)",
		},
		Sweep: SweepStrategy{
			DoubleheaderRule: true,
			BacktestOdds:     2.25,
			BacktestStake:    100,
		},
	}
}

// LoadStrategy overlays the YAML file at path onto the defaults. An empty path
// returns the defaults unchanged.
func LoadStrategy(path string) (Strategy, error) {
	strategy := DefaultStrategy()
	if path == "" {
		return strategy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Strategy{}, fmt.Errorf("read strategy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &strategy); err != nil {
		return Strategy{}, fmt.Errorf("parse strategy file %s: %w", path, err)
	}
	return strategy.withDefaults(), nil
}

// withDefaults restores defaults for values a file zeroed or made negative.
func (s Strategy) withDefaults() Strategy {
	def := DefaultStrategy()
	if s.LookbackDays <= 0 {
		s.LookbackDays = def.LookbackDays
	}
	if s.KRate.Threshold <= 0 {
		s.KRate.Threshold = def.KRate.Threshold
	}
	if s.KRate.HighThreshold < s.KRate.Threshold {
		s.KRate.HighThreshold = max(def.KRate.HighThreshold, s.KRate.Threshold)
	}
	if s.KRate.MinAppearances <= 0 {
		s.KRate.MinAppearances = def.KRate.MinAppearances
	}
	if s.KRate.LookbackDays <= 0 {
		s.KRate.LookbackDays = def.KRate.LookbackDays
	}
	if s.KRate.DefaultTeamRate <= 0 {
		s.KRate.DefaultTeamRate = def.KRate.DefaultTeamRate
	}
	if s.KRate.AssumedTotal <= 0 {
		s.KRate.AssumedTotal = def.KRate.AssumedTotal
	}
	if s.KRate.AssumedFirstFive <= 0 {
		s.KRate.AssumedFirstFive = def.KRate.AssumedFirstFive
	}
	if s.KRate.RecentAppearances <= 0 {
		s.KRate.RecentAppearances = def.KRate.RecentAppearances
	}
	s.Outs = s.Outs.withDefaults(def.Outs)
	if s.WeakTeam.TeamID == "" {
		s.WeakTeam.TeamID = def.WeakTeam.TeamID
	}
	if s.WeakTeam.Spread == "" {
		s.WeakTeam.Spread = def.WeakTeam.Spread
	}
	if s.WeakTeam.HomeReason == "" {
		s.WeakTeam.HomeReason = def.WeakTeam.HomeReason
	}
	if s.WeakTeam.AwayReason == "" {
		s.WeakTeam.AwayReason = def.WeakTeam.AwayReason
	}
	if s.Sweep.BacktestOdds <= 1 {
		s.Sweep.BacktestOdds = def.Sweep.BacktestOdds
	}
	if s.Sweep.BacktestStake <= 0 {
		s.Sweep.BacktestStake = def.Sweep.BacktestStake
	}
	return s
}

// withDefaults restores each non-positive weight from def. A zero home edge
// is kept; only a negative one is repaired. Bounds that cross are reset together.
func (o OutsStrategy) withDefaults(def OutsStrategy) OutsStrategy {
	floats := []struct{ v, d *float64 }{
		{&o.Baseline, &def.Baseline},
		{&o.RecentWeight, &def.RecentWeight},
		{&o.LeagueOPS, &def.LeagueOPS},
		{&o.OPSWeight, &def.OPSWeight},
		{&o.LeagueWHIP, &def.LeagueWHIP},
		{&o.WHIPWeight, &def.WHIPWeight},
		{&o.HighKRate, &def.HighKRate},
		{&o.GoodKRate, &def.GoodKRate},
		{&o.LowKRate, &def.LowKRate},
		{&o.MinEdge, &def.MinEdge},
		{&o.MinOuts, &def.MinOuts},
		{&o.MaxOuts, &def.MaxOuts},
	}
	for _, f := range floats {
		if *f.v <= 0 {
			*f.v = *f.d
		}
	}
	if o.HomeEdge < 0 {
		o.HomeEdge = def.HomeEdge
	}
	if o.RecentGames <= 0 {
		o.RecentGames = def.RecentGames
	}
	if o.MinRecentGames <= 0 || o.MinRecentGames > o.RecentGames {
		o.MinRecentGames = min(def.MinRecentGames, o.RecentGames)
	}
	if o.MaxOuts < o.MinOuts {
		o.MinOuts, o.MaxOuts = def.MinOuts, def.MaxOuts
	}
	return o
}
