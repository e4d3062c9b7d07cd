package travel

import "github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"

// Appearance is the slice of a game the classifier needs from one team's view.
type Appearance struct {
	Date   string
	Venue  string
	IsHome bool
}

// Classification is a team's travel situation for one game.
type Classification struct {
	Label    Label `json:"label"`
	RestDays int   `json:"restDays"`
}

// Classify labels cur against the team's immediately preceding appearance.
// A gap of zero (second game of a doubleheader) is treated as back-to-back;
// Track reuses the opener's classification instead of calling Classify for it.
// Unparseable dates yield NoHistory.
func Classify(prev, cur Appearance) Classification {
	gap, err := timeutil.DaysBetween(prev.Date, cur.Date)
	if err != nil || gap < 0 {
		return Classification{Label: NoHistory}
	}

	sameVenue := prev.Venue == cur.Venue
	c := Classification{RestDays: max(gap-1, 0)}

	switch {
	case gap <= 1 && !sameVenue:
		switch {
		case prev.IsHome:
			c.Label = HomeToAway
		case cur.IsHome:
			c.Label = AwayToHome
		default:
			c.Label = AwayToAway
		}
	case gap <= 1:
		if prev.IsHome {
			c.Label = HomeToHomeNoRest
		} else {
			c.Label = AwayToAwaySameVenue
		}
	case prev.IsHome && cur.IsHome && sameVenue:
		c.Label = HomeToHomeWithRest
	case prev.IsHome:
		c.Label = RestDayHome
	default:
		c.Label = RestDayAway
	}
	return c
}
