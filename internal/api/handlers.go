// Package api exposes the HTTP handlers for the gym service.
package api

import (
	"net/http"

	"github.com/yanab-1/GYMANIA/internal/auth"
	"github.com/yanab-1/GYMANIA/internal/domain"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	accounts   *domain.AccountService
	membership *domain.MembershipService
	attendance *domain.AttendanceService
	workouts   *domain.WorkoutService
	catalog    *domain.CatalogService
	authCfg    auth.Config
}

// NewHandler builds a Handler.
func NewHandler(
	accounts *domain.AccountService,
	membership *domain.MembershipService,
	attendance *domain.AttendanceService,
	workouts *domain.WorkoutService,
	catalog *domain.CatalogService,
	authCfg auth.Config,
) *Handler {
	return &Handler{
		accounts:   accounts,
		membership: membership,
		attendance: attendance,
		workouts:   workouts,
		catalog:    catalog,
		authCfg:    authCfg,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/register", h.register)
	mux.HandleFunc("/v1/auth/login", h.login)

	mux.HandleFunc("/v1/users/profile", h.profile)
	mux.HandleFunc("/v1/users/membership/purchase", h.purchaseMembership)
	mux.HandleFunc("/v1/users/members", h.listMembers)
	mux.HandleFunc("/v1/users/staff/", h.updateStaffRole)

	mux.HandleFunc("/v1/attendance/checkin", h.checkIn)
	mux.HandleFunc("/v1/attendance/today", h.todayAttendance)

	mux.HandleFunc("/v1/plans", h.plans)
	mux.HandleFunc("/v1/plans/", h.planByID)

	mux.HandleFunc("/v1/workouts/exercises", h.exercises)
	mux.HandleFunc("/v1/workouts/log", h.appendWorkoutLog)
	mux.HandleFunc("/v1/workouts/log/history", h.workoutHistory)
	mux.HandleFunc("/v1/workouts/progress/", h.strengthProgress)

	mux.HandleFunc("/v1/equipment", h.equipment)
	mux.HandleFunc("/v1/equipment/", h.equipmentByID)

	mux.HandleFunc("/healthz", healthz)
}

// PublicRoute reports whether the path is reachable without a bearer
// token. Used as the auth middleware skipper.
func PublicRoute(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	switch r.URL.Path {
	case "/healthz", "/metrics", "/v1/auth/register", "/v1/auth/login":
		return true
	case "/v1/plans":
		return r.Method == http.MethodGet
	}
	return false
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
