package api

import (
	"errors"
	"net/http"

	"atelier/internal/db"
	"atelier/internal/metrics"
	"atelier/internal/model"
	"atelier/internal/slots"
)

// SlotResponse is one cell of the day grid. Client identity is only
// present for the admin view.
type SlotResponse struct {
	Time      string      `json:"time"`
	State     slots.State `json:"state"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	BookingID int64       `json:"booking_id,omitempty"`
}

type SlotsResponse struct {
	Date         string         `json:"date"`
	IsVacation   bool           `json:"is_vacation"`
	HasException bool           `json:"has_exception"`
	Slots        []SlotResponse `json:"slots"`
}

// handleSlots returns the slot grid for one day.
// GET /api/v1/slots?date=YYYY-MM-DD
func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("slots")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := model.ParseDateKey(date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	admin := s.isAdmin(r)
	grid, exc := s.dayGrid(r, date)

	resp := SlotsResponse{
		Date:         date,
		IsVacation:   s.resolver.IsVacation(date),
		HasException: exc != nil,
		Slots:        make([]SlotResponse, 0, len(grid)),
	}
	for _, slot := range grid {
		sr := SlotResponse{Time: slot.Time, State: slot.State}
		if admin && slot.Booking != nil {
			sr.BookingID = slot.Booking.ID
			sr.FirstName = slot.Booking.FirstName
			sr.LastName = slot.Booking.LastName
			sr.Phone = slot.Booking.Phone
		}
		resp.Slots = append(resp.Slots, sr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// dayGrid resolves the effective schedule for a date and merges its
// bookings in. Store failures degrade to showing the plain schedule.
func (s *HTTPServer) dayGrid(r *http.Request, date string) ([]slots.Slot, *model.Exception) {
	ctx := r.Context()

	exc, err := s.exceptions.GetExceptionByDate(ctx, date)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		s.logger.Error().Err(err).Str("date", date).Msg("load exception failed; using defaults")
		exc = nil
	}

	exceptions := map[string]*model.Exception{}
	if exc != nil {
		exceptions[date] = exc
	}
	sched := s.resolver.EffectiveSchedule(date, exceptions)

	bookings, err := s.bookings.ListBookingsByDate(ctx, date)
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("load bookings failed; showing empty grid state")
		bookings = nil
	}

	return s.generator.Generate(sched, bookings), exc
}
