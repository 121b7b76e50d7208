package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// CreateEquipmentRequest is the payload for POST /v1/equipment.
type CreateEquipmentRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Location   string `json:"location,omitempty"`
	Status     string `json:"status,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// UpdateEquipmentRequest is the payload for PUT /v1/equipment/{id}.
type UpdateEquipmentRequest struct {
	Status              *string    `json:"status,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date,omitempty"`
}

func (h *Handler) equipment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleAdmin) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.listEquipment(w, r)
	case http.MethodPost:
		h.createEquipment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) equipmentByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requireRole(w, claims, domain.RoleAdmin) {
		return
	}

	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/equipment/")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing equipment id")
		return
	}

	var req UpdateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input := domain.UpdateEquipmentInput{
		Notes:               req.Notes,
		LastMaintenanceDate: req.LastMaintenanceDate,
	}
	if req.Status != nil {
		status := domain.EquipmentStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "validation_failed", "unknown equipment status")
			return
		}
		input.Status = &status
	}

	equipment, err := h.catalog.UpdateEquipment(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListEquipment(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createEquipment(w http.ResponseWriter, r *http.Request) {
	var req CreateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input := domain.CreateEquipmentInput{
		Name:       req.Name,
		Identifier: req.Identifier,
		Location:   req.Location,
		Status:     domain.EquipmentStatus(req.Status),
		Notes:      req.Notes,
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	equipment, err := h.catalog.CreateEquipment(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, equipment)
}
