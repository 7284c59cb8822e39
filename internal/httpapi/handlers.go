// ABOUTME: HTTP handlers for profiles, meal timing, catalog and saved plans.
// ABOUTME: Shared JSON helpers and the {"error":{"code","message"}} envelope.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/report"
	"github.com/harperreed/nutriplan/internal/scheduler"
	"github.com/harperreed/nutriplan/internal/storage"
)

const (
	defaultListLimit = 20
	maxBodyBytes     = 1 << 20
)

// ErrorDetail is the body of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an ErrorDetail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// CreatePlanRequest is the body of POST /v1/plans.
type CreatePlanRequest struct {
	Name    string                `json:"name,omitempty"`
	Notes   string                `json:"notes,omitempty"`
	Profile models.ProfileRequest `json:"profile"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeStorageError maps repository errors onto HTTP statuses.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, storage.ErrAmbiguousPrefix):
		writeError(w, http.StatusConflict, "ambiguous_id", err.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", err.Error())
	default:
		s.logger.Error("storage error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity_levels": catalog.ActivityLevels(),
		"fitness_goals":   catalog.FitnessGoals(),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res := s.planner.Calculator().CreateHealthProfile(req.WithDefaults(s.defaults))
	if !res.Success {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMealTiming(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := req.WithDefaults(s.defaults).Profile()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, models.ErrorCodeValidation, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scheduler.GenerateMealTiming(profile))
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var body CreatePlanRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	plan, err := s.planner.Build(body.Profile.WithDefaults(s.defaults), body.Name)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, models.ErrorCodeValidation, err.Error())
		return
	}
	if body.Notes != "" {
		plan.WithNotes(body.Notes)
	}

	if err := s.repo.CreatePlan(plan); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var goal *string
	if g := q.Get("goal"); g != "" {
		if !catalog.IsValidFitnessGoal(g) {
			writeError(w, http.StatusBadRequest, "invalid_goal", "unknown fitness goal: "+g)
			return
		}
		goal = &g
	}

	limit := defaultListLimit
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	plans, err := s.repo.ListPlans(goal, limit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans": models.Summaries(plans),
		"count": len(plans),
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.repo.GetPlan(mux.Vars(r)["id"])
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeletePlan(mux.Vars(r)["id"]); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlanReport(w http.ResponseWriter, r *http.Request) {
	plan, err := s.repo.GetPlan(mux.Vars(r)["id"])
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	data, err := report.RenderPDF(plan)
	if err != nil {
		s.logger.Error("render report", "plan", plan.ShortID(), "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="plan-`+plan.ShortID()+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
