package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yanab-1/GYMANIA/internal/domain"
	"github.com/yanab-1/GYMANIA/internal/observability"
)

// ProfileView is the safe subset of a user returned to callers.
type ProfileView struct {
	UserID     string            `json:"user_id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       string            `json:"role"`
	Membership domain.Membership `json:"membership"`
}

func toProfileView(user domain.User) ProfileView {
	return ProfileView{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Membership: user.Membership,
	}
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Profile(r.Context(), claims.Subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(user))
}

// PurchaseRequest is the payload for POST /v1/users/membership/purchase.
type PurchaseRequest struct {
	PlanID string `json:"plan_id"`
}

// PurchaseResponse reports the replaced membership window.
type PurchaseResponse struct {
	Message    string            `json:"message"`
	Membership domain.Membership `json:"membership"`
}

func (h *Handler) purchaseMembership(w http.ResponseWriter, r *http.Request) {
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

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.PlanID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "plan_id is required")
		return
	}

	result, err := h.membership.Purchase(r.Context(), claims.Subject, req.PlanID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	observability.RecordPurchase(result.Membership.End)

	writeJSON(w, http.StatusOK, PurchaseResponse{
		Message: "Membership purchased successfully! Plan: " + result.PlanName +
			". Active until: " + result.Membership.End.Format("2006-01-02"),
		Membership: result.Membership,
	})
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleTrainer, domain.RoleAdmin) {
		return
	}

	members, err := h.accounts.ListMembers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]ProfileView, 0, len(members))
	for _, member := range members {
		views = append(views, toProfileView(member))
	}
	writeJSON(w, http.StatusOK, views)
}

// UpdateRoleRequest is the payload for PUT /v1/users/staff/{id}.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) updateStaffRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleAdmin) {
		return
	}

	targetID := strings.TrimPrefix(r.URL.Path, "/v1/users/staff/")
	if strings.TrimSpace(targetID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing user id")
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if !domain.Role(req.Role).Valid() {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid role provided")
		return
	}

	user, err := h.accounts.UpdateRole(r.Context(), claims.Subject, targetID, domain.Role(req.Role))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    string(user.Role),
		"message": "User role updated to " + string(user.Role) + ".",
	})
}
