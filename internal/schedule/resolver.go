package schedule

import (
	"time"

	"atelier/internal/model"
)

// Options configures a Resolver. Zero values fall back to the defaults
// the original site hardcoded.
type Options struct {
	// Vacations are the inclusive holiday ranges switching the weekly table.
	Vacations []VacationPeriod
	// SoonThreshold is the opens/closes-soon window in hours. Default 0.5.
	SoonThreshold float64
	// HorizonDays bounds the next-opening forward scan. Default 7.
	HorizonDays int
}

// Resolver computes effective opening schedules and status. It is pure:
// exception data is always passed in, never fetched or cached here.
type Resolver struct {
	vacations     []VacationPeriod
	soonThreshold float64
	horizonDays   int
}

func New(opts Options) *Resolver {
	r := &Resolver{
		vacations:     opts.Vacations,
		soonThreshold: opts.SoonThreshold,
		horizonDays:   opts.HorizonDays,
	}
	if len(r.vacations) == 0 {
		r.vacations = DefaultVacations
	}
	if r.soonThreshold <= 0 {
		r.soonThreshold = 0.5
	}
	if r.horizonDays <= 0 {
		r.horizonDays = 7
	}
	return r
}

// IsVacation reports whether the date falls in a configured holiday range.
func (r *Resolver) IsVacation(dateKey string) bool {
	return inVacation(r.vacations, dateKey)
}

// DefaultSchedule returns the weekly-table schedule for a day, picking the
// term-time or vacation regime from the date.
func (r *Resolver) DefaultSchedule(day time.Weekday, dateKey string) (model.Schedule, bool) {
	if r.IsVacation(dateKey) {
		return vacationTime[day], true
	}
	return termTime[day], false
}

// EffectiveSchedule resolves the schedule for a date. An exception record
// replaces the default entirely: closed means empty, an explicit interval
// list wins over the weekly table. No merging.
func (r *Resolver) EffectiveSchedule(dateKey string, exceptions map[string]*model.Exception) model.Schedule {
	if exc, ok := exceptions[dateKey]; ok && exc != nil {
		return exc.EffectiveSchedule()
	}
	date, err := model.ParseDateKey(dateKey)
	if err != nil {
		return nil
	}
	sched, _ := r.DefaultSchedule(date.Weekday(), dateKey)
	return sched
}

// Status is the evaluated open/closed state at one instant.
type Status struct {
	IsOpen        bool
	IsOpeningSoon bool
	IsClosingSoon bool
	// TargetTime is the closing hour when open, the next opening hour when
	// closed with a later interval today. Valid only when HasTarget.
	TargetTime float64
	HasTarget  bool
}

// Status evaluates the day schedule at now.
func (r *Resolver) Status(now time.Time, sched model.Schedule) Status {
	return r.StatusAt(model.ClockOf(now), sched)
}

// StatusAt evaluates at a fractional-hour clock value. Interval starts are
// inclusive, ends exclusive.
func (r *Resolver) StatusAt(clock float64, sched model.Schedule) Status {
	var st Status
	for _, iv := range sched {
		if clock >= iv.Start && clock < iv.End {
			st.IsOpen = true
			st.TargetTime = iv.End
			st.HasTarget = true
			st.IsClosingSoon = iv.End-clock <= r.soonThreshold
			return st
		}
	}
	for _, iv := range sched {
		if clock < iv.Start {
			st.TargetTime = iv.Start
			st.HasTarget = true
			st.IsOpeningSoon = iv.Start-clock <= r.soonThreshold
			return st
		}
	}
	return st
}

// NextOpeningMessage scans forward day by day for the first future opening
// and phrases it the way the status widget does. The scan is bounded by
// HorizonDays; if every scanned day is closed it falls back to a generic
// notice instead of looping.
func (r *Resolver) NextOpeningMessage(now time.Time, exceptions map[string]*model.Exception) string {
	for i := 0; i <= r.horizonDays; i++ {
		day := now.AddDate(0, 0, i)
		dateKey := model.DateKeyOf(day)
		sched := r.EffectiveSchedule(dateKey, exceptions)

		clock := 0.0
		if i == 0 {
			clock = model.ClockOf(now)
		}

		for _, iv := range sched {
			if iv.Start > clock {
				opens := model.FormatHour(iv.Start)
				switch i {
				case 0:
					return "Ouvre à " + opens
				case 1:
					return "Ouvre demain à " + opens
				default:
					return "Ouvre " + WeekdayFR(day.Weekday()) + " à " + opens
				}
			}
		}
	}
	return "Consultez les horaires"
}
