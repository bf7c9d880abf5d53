package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"atelier/internal/db"
	"atelier/internal/metrics"
	"atelier/internal/model"
	"atelier/internal/schedule"
	"atelier/internal/slots"
)

// CreateReservationRequest is the public booking form payload.
type CreateReservationRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type CreateReservationResponse struct {
	Success   bool   `json:"success"`
	BookingID int64  `json:"booking_id,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleReservations creates or cancels reservations.
// POST   /api/v1/reservations                      (public, rate limited)
// DELETE /api/v1/reservations?id=N                 (admin)
// DELETE /api/v1/reservations?date=...&time=...    (admin fallback)
func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateReservation(w, r)
	case http.MethodDelete:
		s.handleDeleteReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservation_create")

	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "Trop de demandes, réessayez dans un instant.")
		return
	}

	var req CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking := &model.Booking{
		Date:      req.Date,
		Time:      model.NormalizeClock(req.Time),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Kind:      model.BookingClient,
	}
	if err := booking.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{Error: err.Error()})
		return
	}

	date, _ := model.ParseDateKey(booking.Date)
	today, _ := model.ParseDateKey(model.DateKeyOf(time.Now()))
	if date.Before(today) {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{
			Error: "Cette date est déjà passée.",
		})
		return
	}

	grid, _ := s.dayGrid(r, booking.Date)
	state, ok := slots.Contains(grid, booking.Time)
	if !ok {
		writeJSON(w, http.StatusBadRequest, CreateReservationResponse{
			Error: "Ce créneau est en dehors des horaires d'ouverture.",
		})
		return
	}
	if state != slots.StateAvailable {
		writeJSON(w, http.StatusConflict, CreateReservationResponse{
			Error: "Ce créneau est déjà réservé.",
		})
		return
	}

	if err := s.bookings.InsertBooking(r.Context(), booking); err != nil {
		if errors.Is(err, db.ErrSlotTaken) {
			// Lost the race against another booker; the unique constraint
			// on (date,time) is the authoritative arbiter.
			writeJSON(w, http.StatusConflict, CreateReservationResponse{
				Error: "Ce créneau vient d'être réservé.",
			})
			return
		}
		s.logger.Error().Err(err).Msg("insert reservation failed")
		writeJSON(w, http.StatusInternalServerError, CreateReservationResponse{
			Error: "Une erreur est survenue. Veuillez réessayer.",
		})
		return
	}

	metrics.IncReservationCreated(string(model.BookingClient))
	s.notifier.BookingCreated(booking)

	writeJSON(w, http.StatusCreated, CreateReservationResponse{
		Success:   true,
		BookingID: booking.ID,
		Message:   "Votre rendez-vous est confirmé pour le " + schedule.FormatDateFR(date) + " à " + booking.Time + ".",
	})
}

func (s *HTTPServer) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservation_delete")
	if !s.requireAdmin(w, r) {
		return
	}

	q := r.URL.Query()
	idStr := q.Get("id")
	date := q.Get("date")
	clock := q.Get("time")

	var cancelled *model.Booking

	if idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		cancelled, _ = s.bookings.GetBookingByID(r.Context(), id)
		err = s.bookings.DeleteBookingByID(r.Context(), id)
		if errors.Is(err, db.ErrNotFound) && date != "" && clock != "" {
			// The old admin panel fell back to matching the slot when the
			// delete by id missed; keep that behavior.
			err = s.bookings.DeleteBookingByDateTime(r.Context(), date, clock)
		}
		if err != nil {
			s.deleteError(w, err)
			return
		}
	} else if date != "" && clock != "" {
		err := s.bookings.DeleteBookingByDateTime(r.Context(), date, clock)
		if err != nil {
			s.deleteError(w, err)
			return
		}
	} else {
		writeError(w, http.StatusBadRequest, "id or date+time is required")
		return
	}

	metrics.IncReservationCancelled()
	if cancelled != nil {
		s.notifier.BookingCancelled(cancelled)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *HTTPServer) deleteError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Réservation introuvable.")
		return
	}
	s.logger.Error().Err(err).Msg("delete reservation failed")
	writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
}

// BlockRequest marks one slot as unavailable without a client booking.
type BlockRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// handleBlocks lets the admin block a free slot.
// POST /api/v1/blocks (admin); unblocking goes through DELETE /reservations.
func (s *HTTPServer) handleBlocks(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("block_create")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	var req BlockRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	block := model.NewAdminBlock(req.Date, req.Time)
	if err := block.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	grid, _ := s.dayGrid(r, block.Date)
	if state, ok := slots.Contains(grid, block.Time); !ok {
		writeError(w, http.StatusBadRequest, "Ce créneau est en dehors des horaires d'ouverture.")
		return
	} else if state != slots.StateAvailable {
		writeError(w, http.StatusConflict, "Ce créneau est déjà occupé.")
		return
	}

	if err := s.bookings.InsertBooking(r.Context(), block); err != nil {
		if errors.Is(err, db.ErrSlotTaken) {
			writeError(w, http.StatusConflict, "Ce créneau vient d'être réservé.")
			return
		}
		s.logger.Error().Err(err).Msg("insert block failed")
		writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
		return
	}

	metrics.IncReservationCreated(string(model.BookingAdminBlock))
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "booking_id": block.ID})
}
