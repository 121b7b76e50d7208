package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yanab-1/GYMANIA/internal/domain"
	"github.com/yanab-1/GYMANIA/internal/observability"
)

// CheckInRequest is the payload for POST /v1/attendance/checkin.
type CheckInRequest struct {
	ScannerID string `json:"scanner_id,omitempty"`
}

// CheckInResponse confirms a recorded visit.
type CheckInResponse struct {
	CheckInID string `json:"check_in_id"`
	Message   string `json:"message"`
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
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

	var req CheckInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
	}

	result, err := h.attendance.CheckIn(r.Context(), claims.Subject, req.ScannerID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipInactive) {
			// Carry the hint directing the member to the purchase flow.
			writeJSON(w, http.StatusForbidden, map[string]string{
				"type":     "forbidden",
				"detail":   "Membership expired or inactive. Please renew your plan.",
				"redirect": "/purchase-plan",
			})
			return
		}
		writeDomainError(w, err)
		return
	}
	observability.RecordCheckIn()

	writeJSON(w, http.StatusOK, CheckInResponse{
		CheckInID: result.Record.ID,
		Message: "Welcome, " + result.MemberName + "! Check-in successful at " +
			result.Record.CheckInTime.Format("15:04:05") + ".",
	})
}

func (h *Handler) todayAttendance(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.attendance.ListToday(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.AttendanceEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
