package model

import (
	"fmt"
	"time"
)

// Exception overrides the default schedule for a single date.
// At most one record exists per date; the override is total, never merged
// with the weekly defaults.
type Exception struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	IsClosed  bool      `json:"is_closed"`
	Schedule  Schedule  `json:"schedule"` // ignored when IsClosed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the record before it reaches the store. A date not
// marked closed must carry at least one well-formed interval.
func (e *Exception) Validate() error {
	if _, err := ParseDateKey(e.Date); err != nil {
		return err
	}
	if e.IsClosed {
		return nil
	}
	if len(e.Schedule) == 0 {
		return fmt.Errorf("%w: define at least one interval or mark the day closed", ErrInvalidSchedule)
	}
	return e.Schedule.Validate()
}

// EffectiveSchedule returns the schedule this exception imposes:
// empty when closed, the explicit interval list otherwise.
func (e *Exception) EffectiveSchedule() Schedule {
	if e.IsClosed {
		return nil
	}
	return e.Schedule
}

// ExceptionMap indexes records by date for resolver lookups.
func ExceptionMap(list []Exception) map[string]*Exception {
	m := make(map[string]*Exception, len(list))
	for i := range list {
		m[list[i].Date] = &list[i]
	}
	return m
}
