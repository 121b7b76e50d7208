package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yanab-1/GYMANIA/internal/auth"
	"github.com/yanab-1/GYMANIA/internal/domain"
	"github.com/yanab-1/GYMANIA/internal/observability"
)

// CreateExerciseRequest is the payload for POST /v1/workouts/exercises.
type CreateExerciseRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// AppendLogRequest is the payload for POST /v1/workouts/log.
type AppendLogRequest struct {
	DurationMin int                   `json:"duration_min,omitempty"`
	Exercises   []domain.WorkoutEntry `json:"exercises"`
	Notes       string                `json:"notes,omitempty"`
}

// AppendLogResponse confirms a recorded session.
type AppendLogResponse struct {
	Message string    `json:"message"`
	LogID   string    `json:"log_id"`
	Date    time.Time `json:"date"`
}

func (h *Handler) exercises(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listExercises(w, r)
	case http.MethodPost:
		h.createExercise(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireClaims(w, r); !ok {
		return
	}

	exercises, err := h.catalog.ListExercises(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *Handler) createExercise(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleTrainer, domain.RoleAdmin) {
		return
	}

	var req CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input := domain.CreateExerciseInput{
		Name:        req.Name,
		Category:    domain.ExerciseCategory(req.Category),
		Description: req.Description,
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	exercise, err := h.catalog.CreateExercise(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (h *Handler) appendWorkoutLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleMember) {
		return
	}

	var req AppendLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if len(req.Exercises) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", domain.ErrEmptyWorkout.Error())
		return
	}

	log, err := h.workouts.AppendLog(r.Context(), domain.AppendLogInput{
		MemberID:    claims.Subject,
		DurationMin: req.DurationMin,
		Entries:     req.Exercises,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	observability.RecordWorkoutLogged()

	writeJSON(w, http.StatusCreated, AppendLogResponse{
		Message: "Workout logged successfully!",
		LogID:   log.ID,
		Date:    log.LoggedAt,
	})
}

func (h *Handler) workoutHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	memberID, ok := resolveMemberID(w, r, claims)
	if !ok {
		return
	}

	history, err := h.workouts.History(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if history == nil {
		history = []domain.WorkoutLog{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) strengthProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	exerciseID := strings.TrimPrefix(r.URL.Path, "/v1/workouts/progress/")
	if strings.TrimSpace(exerciseID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing exercise id")
		return
	}

	memberID, ok := resolveMemberID(w, r, claims)
	if !ok {
		return
	}

	series, err := h.workouts.StrengthProgress(r.Context(), exerciseID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrExerciseNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "exercise not found")
			return
		}
		writeDomainError(w, err)
		return
	}
	if series.Points == nil {
		series.Points = []domain.ProgressPoint{}
	}
	writeJSON(w, http.StatusOK, series)
}

// resolveMemberID picks the member whose data is being read: members
// always read their own, staff must name a target via the member_id
// query parameter.
func resolveMemberID(w http.ResponseWriter, r *http.Request, claims *auth.Claims) (string, bool) {
	if claims.Role == domain.RoleMember {
		return claims.Subject, true
	}
	memberID := r.URL.Query().Get("member_id")
	if strings.TrimSpace(memberID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "member_id parameter required")
		return "", false
	}
	return memberID, true
}
