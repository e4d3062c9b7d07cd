package travel

import (
	"errors"
	"fmt"
)

// Label is the closed travel-type taxonomy. String is the only conversion to a
// display string; the same strings are used as JSON values and map keys.
type Label int

const (
	NoHistory Label = iota
	HomeToAway
	AwayToAway
	AwayToHome
	HomeToHomeNoRest
	HomeToHomeWithRest
	AwayToAwaySameVenue
	RestDayHome
	RestDayAway
)

// ErrUnknownLabel is returned when a string does not name a travel label.
var ErrUnknownLabel = errors.New("unknown travel label")

var labelNames = [...]string{
	NoHistory:           "Rest Day (First Game)",
	HomeToAway:          "Home to Away",
	AwayToAway:          "Away to Away",
	AwayToHome:          "Away to Home",
	HomeToHomeNoRest:    "Home to Home (no Rest)",
	HomeToHomeWithRest:  "Home to Home (with Rest)",
	AwayToAwaySameVenue: "Away to Away (Same Venue)",
	RestDayHome:         "Rest Day (Home)",
	RestDayAway:         "Rest Day (Away)",
}

// legacyNames maps spellings that older dashboards emitted.
var legacyNames = map[string]Label{
	"Home to Home (Rest)": HomeToHomeWithRest,
}

// Labels returns every label in declaration order.
func Labels() []Label {
	out := make([]Label, 0, len(labelNames))
	for i := range labelNames {
		out = append(out, Label(i))
	}
	return out
}

// Valid reports whether l is a member of the taxonomy.
func (l Label) Valid() bool {
	return l >= 0 && int(l) < len(labelNames)
}

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// Traveling reports whether the team arrived from a different venue without a day off.
func (l Label) Traveling() bool {
	return l == HomeToAway || l == AwayToAway
}

// HomeStand reports whether the team stayed home at the same park.
func (l Label) HomeStand() bool {
	return l == HomeToHomeNoRest || l == HomeToHomeWithRest
}

// ParseLabel converts a display string back into a Label.
func ParseLabel(s string) (Label, error) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	if l, ok := legacyNames[s]; ok {
		return l, nil
	}
	return NoHistory, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// MarshalText encodes the display string.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a display string.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
