package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSchedule marks validation failures that must block submission
// before any store call.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Interval is one contiguous open period within a day.
// Bounds are fractional hours in [0,24), start strictly before end.
type Interval struct {
	Start float64
	End   float64
}

// Schedule is the ordered list of open intervals for a single day.
// An empty schedule means the day is fully closed.
//
// The wire form is the legacy pair-array the admin editor stores:
// [[11,12],[14,18]].
type Schedule []Interval

func (s Schedule) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(s))
	for i, iv := range s {
		pairs[i] = [2]float64{iv.Start, iv.End}
	}
	return json.Marshal(pairs)
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(Schedule, len(pairs))
	for i, p := range pairs {
		out[i] = Interval{Start: p[0], End: p[1]}
	}
	*s = out
	return nil
}

// Validate rejects malformed interval lists: out-of-range bounds,
// start >= end, and unsorted or overlapping intervals. The original data
// source never checked overlap; here it is a hard error.
func (s Schedule) Validate() error {
	for i, iv := range s {
		if iv.Start < 0 || iv.End > 24 {
			return fmt.Errorf("%w: interval %d out of range [0,24]", ErrInvalidSchedule, i+1)
		}
		if iv.Start >= iv.End {
			return fmt.Errorf("%w: interval %d start must be before end", ErrInvalidSchedule, i+1)
		}
		if i > 0 && iv.Start < s[i-1].End {
			return fmt.Errorf("%w: intervals must be sorted and non-overlapping", ErrInvalidSchedule)
		}
	}
	return nil
}

// FormatHour renders fractional hours the way the status widget does:
// no hour padding, minutes zero-padded ("9:00", "18:30").
func FormatHour(t float64) string {
	h := int(t)
	m := int(math.Round((t - float64(h)) * 60))
	return fmt.Sprintf("%d:%02d", h, m)
}

// NormalizeClock strips trailing seconds from a stored time of day,
// "18:30:00" -> "18:30". Values already in HH:MM pass through.
func NormalizeClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// StoreClock appends seconds for the store boundary, "18:30" -> "18:30:00".
func StoreClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

// ParseClock converts HH:MM (or HH:MM:SS) to fractional hours.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(NormalizeClock(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q; expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return float64(h) + float64(m)/60, nil
}
