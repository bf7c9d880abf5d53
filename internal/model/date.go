package model

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical calendar-date form used as the join key
// across reservations and temporary hours.
const DateKeyLayout = "2006-01-02"

// DateKeyOf returns the local calendar date of t as YYYY-MM-DD.
func DateKeyOf(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as a local calendar date.
// The result is midnight local time, never shifted through UTC.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q; expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ClockOf returns the time of day of t as fractional hours.
func ClockOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}
