package timeutil

import "time"

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

// CurrentSeason returns the season year for a kickoff time. Games in
// January and February belong to the prior calendar year's season.
func CurrentSeason(t time.Time) int {
	if t.Month() < time.March {
		return t.Year() - 1
	}
	return t.Year()
}
