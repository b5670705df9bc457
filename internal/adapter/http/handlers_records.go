package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"weightlog/internal/domain"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.records.ListRecords(ctx)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut:
		var body domain.WeightRecord
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if body.Date == "" {
			writeError(w, http.StatusBadRequest, errors.New("date is required"))
			return
		}
		rec, err := s.records.SaveRecord(ctx, body)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": rec})

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, errors.New("id is required"))
			return
		}
		if err := s.records.DeleteRecord(ctx, id); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		p, err := s.records.GetProfile(ctx)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": p})

	case http.MethodPut:
		var body domain.UserProfile
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if body.WeightUnit != "" && !domain.ValidUnit(body.WeightUnit) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w %q", domain.ErrInvalidUnit, body.WeightUnit))
			return
		}
		if err := s.records.UpdateProfile(ctx, body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": body})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		g, err := s.records.GetGoal(ctx)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": g})

	case http.MethodPut:
		var body domain.Goal
		if err := parseJSON(r, &body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if err := s.records.UpdateGoal(ctx, body); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		g, err := s.records.GetGoal(ctx)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": g})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
