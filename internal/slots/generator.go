package slots

import (
	"fmt"
	"math"

	"atelier/internal/model"
)

// State tags one slot in the day grid.
type State string

const (
	StateAvailable State = "available"
	StateBooked    State = "booked"  // reserved by a client
	StateBlocked   State = "blocked" // blocked by the admin
)

// Slot is the atomic bookable unit within a day schedule.
type Slot struct {
	Time  string `json:"time"` // "HH:MM"
	State State  `json:"state"`

	// Booking is the occupying record, nil when available. The API layer
	// decides whether client identity is exposed.
	Booking *model.Booking `json:"-"`
}

// Generator enumerates slots over a day schedule and merges bookings in.
type Generator struct {
	slotMinutes int
}

// NewGenerator creates a generator with the given granularity in minutes.
// Values <= 0 fall back to 30.
func NewGenerator(slotMinutes int) *Generator {
	if slotMinutes <= 0 {
		slotMinutes = 30
	}
	return &Generator{slotMinutes: slotMinutes}
}

// Generate produces the ordered slot grid for one day. Slots cover each
// interval from start to end, end exclusive; an empty schedule yields no
// slots at all. Bookings are matched by exact time of day, tolerant of
// trailing seconds in the stored value.
func (g *Generator) Generate(sched model.Schedule, bookings []model.Booking) []Slot {
	byTime := make(map[string]*model.Booking, len(bookings))
	for i := range bookings {
		byTime[model.NormalizeClock(bookings[i].Time)] = &bookings[i]
	}

	var out []Slot
	for _, interval := range sched {
		startMin := int(math.Round(interval.Start * 60))
		endMin := int(math.Round(interval.End * 60))
		for m := startMin; m < endMin; m += g.slotMinutes {
			clock := fmt.Sprintf("%02d:%02d", m/60, m%60)
			slot := Slot{Time: clock, State: StateAvailable}
			if b, ok := byTime[clock]; ok {
				slot.Booking = b
				if b.Kind == model.BookingAdminBlock {
					slot.State = StateBlocked
				} else {
					slot.State = StateBooked
				}
			}
			out = append(out, slot)
		}
	}
	return out
}

// Contains reports whether the grid has an available slot at clock.
// Used to reject bookings outside the effective schedule before the
// store-level uniqueness constraint even comes into play.
func Contains(grid []Slot, clock string) (State, bool) {
	clock = model.NormalizeClock(clock)
	for _, s := range grid {
		if s.Time == clock {
			return s.State, true
		}
	}
	return "", false
}
