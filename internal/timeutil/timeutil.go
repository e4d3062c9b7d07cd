package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of calendar days from a to b. Both dates are
// truncated to their YYYY-MM-DD value, so clock times and zones never leak
// into the gap.
func DaysBetween(a, b string) (int, error) {
	start, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours() / 24), nil
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, n)), nil
}

// DateRange returns every date from start to end inclusive. An end before
// start yields nil.
func DateRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates, nil
}

// SeasonStart combines a year with an MM-DD opening day.
func SeasonStart(year int, monthDay string) (string, error) {
	date := fmt.Sprintf("%04d-%s", year, monthDay)
	if _, err := ParseDate(date); err != nil {
		return "", fmt.Errorf("invalid season start %q: %w", monthDay, err)
	}
	return date, nil
}

// ResolveTimezone returns a location for a tz string, or UTC if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the current date in the given location.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}
