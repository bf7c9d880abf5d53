package api

import (
	"fmt"
	"net/http"

	"atelier/internal/export"
	"atelier/internal/metrics"
	"atelier/internal/model"
)

// handleExport streams the reservations report as an xlsx workbook.
// GET /api/v1/export?from=YYYY-MM-DD&to=YYYY-MM-DD (admin)
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	fromDate, err := model.ParseDateKey(from)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	toDate, err := model.ParseDateKey(to)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date")
		return
	}
	if fromDate.After(toDate) {
		writeError(w, http.StatusBadRequest, "from must be before or equal to to")
		return
	}

	bookings, err := s.bookings.ListBookingsRange(r.Context(), from, to)
	if err != nil {
		s.logger.Error().Err(err).Msg("list bookings for export failed")
		writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
		return
	}

	wb, err := export.ReservationsWorkbook(bookings, from, to)
	if err != nil {
		s.logger.Error().Err(err).Msg("build export workbook failed")
		writeError(w, http.StatusInternalServerError, "Une erreur est survenue.")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=reservations_%s_%s.xlsx", from, to))
	if err := wb.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("stream export failed")
	}
}
