package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yanab-1/GYMANIA/internal/auth"
	"github.com/yanab-1/GYMANIA/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeDomainError maps domain sentinel errors to HTTP statuses. The
// membership-inactive case is handled at the check-in handler so it can
// carry the purchase-flow redirect hint.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrNotMember):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrExerciseExists),
		errors.Is(err, domain.ErrEquipmentExists):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrSelfDemotion),
		errors.Is(err, domain.ErrMembershipInactive):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrEmptyWorkout):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

// requireClaims pulls bearer claims off the context, answering 401 when
// the middleware did not attach any.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	return claims, true
}

// requireRole answers 403 unless the caller holds one of the roles.
func requireRole(w http.ResponseWriter, claims *auth.Claims, roles ...domain.Role) bool {
	for _, role := range roles {
		if claims.Role == role {
			return true
		}
	}
	writeError(w, http.StatusForbidden, "forbidden",
		"user role "+string(claims.Role)+" is not authorized to access this route")
	return false
}
