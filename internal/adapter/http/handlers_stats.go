package adapthttp

import (
	"net/http"

	"weightlog/internal/domain"
)

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sm, err := s.stats.Summary(r.Context(), intQuery(r, "days", 0), stringQuery(r, "unit", domain.UnitKg))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": sm})
}

func (s *Server) handleStatsProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.stats.Progress(r.Context(), stringQuery(r, "unit", domain.UnitKg))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": p})
}

func (s *Server) handleStatsTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	points, err := s.stats.Trend(r.Context(), intQuery(r, "days", 30), stringQuery(r, "unit", domain.UnitKg))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}
