package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atelier/internal/model"
)

// 2026-03-16 .. 2026-03-22 is a term-time Monday..Sunday;
// 2026-02-16 .. 2026-02-22 falls inside the February holidays.
func TestWeeklyTables(t *testing.T) {
	r := New(Options{})

	tests := []struct {
		name    string
		day     time.Weekday
		dateKey string
		want    model.Schedule
		wantVac bool
	}{
		{"term monday", time.Monday, "2026-03-16", model.Schedule{iv(18, 19)}, false},
		{"term tuesday", time.Tuesday, "2026-03-17", model.Schedule{iv(18, 19)}, false},
		{"term wednesday", time.Wednesday, "2026-03-18", model.Schedule{iv(17, 19)}, false},
		{"term thursday", time.Thursday, "2026-03-19", model.Schedule{iv(18, 19)}, false},
		{"term friday closed", time.Friday, "2026-03-20", nil, false},
		{"term saturday", time.Saturday, "2026-03-21", model.Schedule{iv(11, 12), iv(14, 18)}, false},
		{"term sunday", time.Sunday, "2026-03-22", model.Schedule{iv(14, 18)}, false},

		{"vacation monday", time.Monday, "2026-02-16", model.Schedule{iv(14, 18)}, true},
		{"vacation tuesday", time.Tuesday, "2026-02-17", model.Schedule{iv(11, 12), iv(14, 18)}, true},
		{"vacation wednesday", time.Wednesday, "2026-02-18", model.Schedule{iv(11, 12), iv(14, 18)}, true},
		{"vacation thursday", time.Thursday, "2026-02-19", model.Schedule{iv(11, 12), iv(14, 18)}, true},
		{"vacation friday", time.Friday, "2026-02-20", model.Schedule{iv(11, 12), iv(14, 19)}, true},
		{"vacation saturday", time.Saturday, "2026-02-21", model.Schedule{iv(11, 12), iv(14, 19)}, true},
		{"vacation sunday", time.Sunday, "2026-02-22", model.Schedule{iv(14, 18)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, vac := r.DefaultSchedule(tt.day, tt.dateKey)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantVac, vac)
		})
	}
}

func TestVacationBoundsInclusive(t *testing.T) {
	r := New(Options{})

	assert.False(t, r.IsVacation("2026-02-13"))
	assert.True(t, r.IsVacation("2026-02-14"))
	assert.True(t, r.IsVacation("2026-03-01"))
	assert.False(t, r.IsVacation("2026-03-02"))
	assert.True(t, r.IsVacation("2026-08-31"))
	assert.False(t, r.IsVacation("2026-09-01"))
}

func TestCustomVacations(t *testing.T) {
	r := New(Options{Vacations: []VacationPeriod{{Start: "2026-06-01", End: "2026-06-07"}}})

	assert.True(t, r.IsVacation("2026-06-03"))
	// The defaults no longer apply once ranges are configured.
	assert.False(t, r.IsVacation("2026-02-20"))
}

func TestFormatDateFR(t *testing.T) {
	d := time.Date(2026, time.February, 21, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Samedi 21 Février 2026", FormatDateFR(d))
	assert.Equal(t, "Samedi", WeekdayFR(d.Weekday()))
}
