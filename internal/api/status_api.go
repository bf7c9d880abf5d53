package api

import (
	"net/http"
	"time"

	"atelier/internal/metrics"
	"atelier/internal/model"
)

// StatusResponse feeds the open/closed widget. The message is already
// phrased; the flags let the widget pick dot color and label.
type StatusResponse struct {
	IsOpen        bool           `json:"is_open"`
	IsClosingSoon bool           `json:"is_closing_soon"`
	IsOpeningSoon bool           `json:"is_opening_soon"`
	Label         string         `json:"label"`
	Message       string         `json:"message"`
	TargetTime    string         `json:"target_time,omitempty"`
	Schedule      model.Schedule `json:"schedule"`
	IsVacation    bool           `json:"is_vacation"`
	HasException  bool           `json:"has_exception"`
	Notice        string         `json:"notice,omitempty"`
}

// handleStatus evaluates the current open/closed state.
// GET /api/v1/status
func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("status")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	today := model.DateKeyOf(now)
	exceptions := s.weekExceptions(r.Context(), now)

	sched := s.resolver.EffectiveSchedule(today, exceptions)
	st := s.resolver.Status(now, sched)

	resp := StatusResponse{
		IsOpen:        st.IsOpen,
		IsClosingSoon: st.IsClosingSoon,
		IsOpeningSoon: st.IsOpeningSoon,
		Schedule:      sched,
		IsVacation:    s.resolver.IsVacation(today),
	}

	switch {
	case st.IsOpen && st.IsClosingSoon:
		resp.Label = "FERME BIENTÔT"
	case st.IsOpen:
		resp.Label = "ACTUELLEMENT OUVERT"
	case st.IsOpeningSoon:
		resp.Label = "OUVRE BIENTÔT"
	default:
		resp.Label = "ACTUELLEMENT FERMÉ"
	}

	if st.IsOpen {
		resp.TargetTime = model.FormatHour(st.TargetTime)
		resp.Message = "Ferme à " + resp.TargetTime
	} else {
		if st.HasTarget {
			resp.TargetTime = model.FormatHour(st.TargetTime)
		}
		resp.Message = s.resolver.NextOpeningMessage(now, exceptions)
	}

	if exc, ok := exceptions[today]; ok && exc != nil {
		resp.HasException = true
		if exc.IsClosed {
			resp.Notice = "⚠ Exceptionnellement fermé aujourd'hui"
		} else {
			resp.Notice = "⚠ Horaires exceptionnels aujourd'hui"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
