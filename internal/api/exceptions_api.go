package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"atelier/internal/db"
	"atelier/internal/metrics"
	"atelier/internal/model"
)

// ExceptionResponse serves the temporary-hours editor. For dates without
// a record the default schedule is included as the pre-fill.
type ExceptionResponse struct {
	Date            string         `json:"date"`
	Exists          bool           `json:"exists"`
	IsClosed        bool           `json:"is_closed"`
	Schedule        model.Schedule `json:"schedule"`
	DefaultSchedule model.Schedule `json:"default_schedule"`
	IsVacation      bool           `json:"is_vacation"`
}

// SaveExceptionRequest is the editor payload.
type SaveExceptionRequest struct {
	Date     string         `json:"date"`
	IsClosed bool           `json:"is_closed"`
	Schedule model.Schedule `json:"schedule"`
}

// handleExceptions manages per-date schedule overrides (admin only).
// GET    /api/v1/exceptions?date=YYYY-MM-DD
// GET    /api/v1/exceptions?from=...&to=...
// PUT    /api/v1/exceptions
// DELETE /api/v1/exceptions?date=YYYY-MM-DD
func (s *HTTPServer) handleExceptions(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("exceptions")
	if !s.requireAdmin(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetExceptions(w, r)
	case http.MethodPut:
		s.handleSaveException(w, r)
	case http.MethodDelete:
		s.handleDeleteException(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleGetExceptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		if _, err := model.ParseDateKey(from); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		if _, err := model.ParseDateKey(to); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		list, err := s.exceptions.ListExceptions(r.Context(), from, to)
		if err != nil {
			s.logger.Error().Err(err).Msg("list exceptions failed")
			writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exceptions": list})
		return
	}

	date := q.Get("date")
	parsed, err := model.ParseDateKey(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	defSched, isVacation := s.resolver.DefaultSchedule(parsed.Weekday(), date)
	resp := ExceptionResponse{
		Date:            date,
		Schedule:        model.Schedule{},
		DefaultSchedule: defSched,
		IsVacation:      isVacation,
	}

	exc, err := s.exceptions.GetExceptionByDate(r.Context(), date)
	switch {
	case errors.Is(err, db.ErrNotFound):
		// No override; the editor pre-fills from the default table.
	case err != nil:
		s.logger.Error().Err(err).Msg("get exception failed")
		writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
		return
	default:
		resp.Exists = true
		resp.IsClosed = exc.IsClosed
		if exc.Schedule != nil {
			resp.Schedule = exc.Schedule
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleSaveException(w http.ResponseWriter, r *http.Request) {
	var req SaveExceptionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	exc := &model.Exception{
		Date:     req.Date,
		IsClosed: req.IsClosed,
		Schedule: req.Schedule,
	}
	if err := exc.Validate(); err != nil {
		// Malformed intervals never reach the store.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.exceptions.UpsertException(r.Context(), exc); err != nil {
		s.logger.Error().Err(err).Msg("save exception failed")
		writeError(w, http.StatusInternalServerError, "Impossible d'enregistrer les horaires.")
		return
	}

	s.cache.Invalidate(r.Context())
	metrics.IncExceptionWrite("save")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *HTTPServer) handleDeleteException(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := model.ParseDateKey(date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	err := s.exceptions.DeleteExceptionByDate(r.Context(), date)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Aucun horaire modifié pour cette date.")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("delete exception failed")
		writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
		return
	}

	s.cache.Invalidate(r.Context())
	metrics.IncExceptionWrite("delete")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
