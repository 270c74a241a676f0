package handler

import (
	"encoding/json"
	"net/http"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
	"github.com/autocare/autocare/internal/settings"
)

// SettingsHandler handles alert settings endpoints.
type SettingsHandler struct {
	settings *settings.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// GetAlertSettings handles GET /v1/settings/alerts.
func (h *SettingsHandler) GetAlertSettings(w http.ResponseWriter, r *http.Request) {
	current := h.settings.Get(r.Context())
	response.JSON(w, r, http.StatusOK, models.NewAlertSettingsResponse(current))
}

// UpdateAlertSettings handles PUT /v1/settings/alerts.
func (h *SettingsHandler) UpdateAlertSettings(w http.ResponseWriter, r *http.Request) {
	var req models.AlertSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	updated := settings.AlertSettings{AlertDays: req.AlertDays, AlertKm: req.AlertKm}
	if err := h.settings.Update(r.Context(), updated); err != nil {
		response.InternalError(w, r, "unable to update alert settings")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewAlertSettingsResponse(updated))
}
