package schedule

import (
	"time"

	"atelier/internal/model"
)

// VacationPeriod is one inclusive school-holiday range. The date keys are
// fixed-width YYYY-MM-DD, so lexicographic comparison is safe.
type VacationPeriod struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// DefaultVacations is the Zone B school-holiday calendar 2025-2026
// (Nantes), used when the configuration supplies no ranges.
var DefaultVacations = []VacationPeriod{
	{Start: "2025-10-18", End: "2025-11-02"},
	{Start: "2025-12-20", End: "2026-01-04"},
	{Start: "2026-02-14", End: "2026-03-01"},
	{Start: "2026-04-11", End: "2026-04-26"},
	{Start: "2026-05-14", End: "2026-05-17"}, // Pont de l'Ascension
	{Start: "2026-07-04", End: "2026-08-31"},
}

func iv(start, end float64) model.Interval {
	return model.Interval{Start: start, End: end}
}

// Weekly opening tables. This is the single source of truth for every
// caller (status widget, booking slots, admin pre-fill); the old site
// re-derived it in six places and the copies drifted.
var (
	termTime = map[time.Weekday]model.Schedule{
		time.Monday:    {iv(18, 19)},
		time.Tuesday:   {iv(18, 19)},
		time.Wednesday: {iv(17, 19)},
		time.Thursday:  {iv(18, 19)},
		time.Friday:    nil, // closed
		time.Saturday:  {iv(11, 12), iv(14, 18)},
		time.Sunday:    {iv(14, 18)},
	}

	vacationTime = map[time.Weekday]model.Schedule{
		time.Monday:    {iv(14, 18)},
		time.Tuesday:   {iv(11, 12), iv(14, 18)},
		time.Wednesday: {iv(11, 12), iv(14, 18)},
		time.Thursday:  {iv(11, 12), iv(14, 18)},
		time.Friday:    {iv(11, 12), iv(14, 19)},
		time.Saturday:  {iv(11, 12), iv(14, 19)},
		time.Sunday:    {iv(14, 18)},
	}
)

func inVacation(vacations []VacationPeriod, dateKey string) bool {
	for _, p := range vacations {
		if dateKey >= p.Start && dateKey <= p.End {
			return true
		}
	}
	return false
}
