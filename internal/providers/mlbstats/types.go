package mlbstats

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GamePk            int                   `json:"gamePk"`
	GameDate          string                `json:"gameDate"`
	OfficialDate      string                `json:"officialDate"`
	Season            string                `json:"season"`
	Status            statusResponse        `json:"status"`
	Teams             matchupResponse       `json:"teams"`
	Venue             venueResponse         `json:"venue"`
	SeriesDescription string                `json:"seriesDescription"`
	SeriesGameNumber  flexInt               `json:"seriesGameNumber"`
	GamesInSeries     flexInt               `json:"gamesInSeries"`
	DoubleHeader      string                `json:"doubleHeader"`
	GameNumber        flexInt               `json:"gameNumber"`
	SeriesStatus      *seriesStatusResponse `json:"seriesStatus"`
}

type statusResponse struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type matchupResponse struct {
	Home sideResponse `json:"home"`
	Away sideResponse `json:"away"`
}

type sideResponse struct {
	Team            teamResponse    `json:"team"`
	Score           *int            `json:"score"`
	ProbablePitcher *personResponse `json:"probablePitcher"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type personResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type venueResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type seriesStatusResponse struct {
	HomeWins int  `json:"homeWins"`
	AwayWins int  `json:"awayWins"`
	IsVersus bool `json:"isVersus"`
}

type statsResponse struct {
	Stats []statGroup `json:"stats"`
}

type statGroup struct {
	Group  groupResponse `json:"group"`
	Splits []statSplit   `json:"splits"`
}

type groupResponse struct {
	DisplayName string `json:"displayName"`
}

type statSplit struct {
	Date   string   `json:"date"`
	Season string   `json:"season"`
	Stat   statLine `json:"stat"`
}

// statLine covers both pitching and hitting splits; statsapi omits what does not apply.
type statLine struct {
	StrikeOuts       flexInt   `json:"strikeOuts"`
	BattersFaced     flexInt   `json:"battersFaced"`
	InningsPitched   string    `json:"inningsPitched"`
	GamesStarted     flexInt   `json:"gamesStarted"`
	AtBats           flexInt   `json:"atBats"`
	BaseOnBalls      flexInt   `json:"baseOnBalls"`
	Walks            flexInt   `json:"walks"`
	HitByPitch       flexInt   `json:"hitByPitch"`
	SacFlies         flexInt   `json:"sacFlies"`
	SacBunts         flexInt   `json:"sacBunts"`
	PlateAppearances flexInt   `json:"plateAppearances"`
	Outs             flexInt   `json:"outs"`
	Hits             flexInt   `json:"hits"`
	OPS              flexFloat `json:"ops"`
}

// flexInt accepts a JSON number or a numeric string; anything else decodes as zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.Trim(raw, `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*f = 0
		return nil
	}
	n := json.Number(raw)
	if v, err := n.Int64(); err == nil {
		*f = flexInt(v)
		return nil
	}
	if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
		*f = flexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}

// flexFloat accepts rate stats such as ".750", sent as strings, or plain numbers.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(raw []byte) error {
	raw = bytes.Trim(raw, `"`)
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
