package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/vehicle"
)

// MaintenanceHandler handles maintenance event and catalog endpoints.
type MaintenanceHandler struct {
	maintenance *maintenance.Service
	catalog     *catalog.Catalog
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maint *maintenance.Service, cat *catalog.Catalog) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maint, catalog: cat}
}

// ListEvents handles GET /v1/vehicles/{vehicleId}/maintenance.
func (h *MaintenanceHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.maintenance.ListByVehicle(r.Context(), chi.URLParam(r, "vehicleId"))
	if err != nil {
		response.InternalError(w, r, "unable to list maintenance events")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewMaintenanceEventListResponse(events))
}

// LogEvent handles POST /v1/vehicles/{vehicleId}/maintenance.
func (h *MaintenanceHandler) LogEvent(w http.ResponseWriter, r *http.Request) {
	var req models.LogMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	input := maintenance.LogInput{
		VehicleID:     chi.URLParam(r, "vehicleId"),
		Kind:          req.KindID,
		PerformedAt:   req.PerformedAt.Time(),
		Odometer:      req.Odometer,
		PlannedNextKm: req.PlannedNextKm,
	}
	if req.PlannedNextDate != nil {
		t := req.PlannedNextDate.Time()
		input.PlannedNextDate = &t
	}

	ev, err := h.maintenance.Log(r.Context(), input)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to log maintenance")
		return
	}

	response.Created(w, r, "/v1/maintenance/"+ev.ID, models.NewMaintenanceEventResponse(ev))
}

// GetEvent handles GET /v1/maintenance/{eventId}.
func (h *MaintenanceHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.maintenance.Get(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		if errors.Is(err, maintenance.ErrEventNotFound) {
			response.NotFound(w, r, "maintenance event not found")
			return
		}
		response.InternalError(w, r, "unable to load maintenance event")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewMaintenanceEventResponse(ev))
}

// DeleteEvent handles DELETE /v1/maintenance/{eventId}.
func (h *MaintenanceHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.Delete(r.Context(), chi.URLParam(r, "eventId")); err != nil {
		if errors.Is(err, maintenance.ErrEventNotFound) {
			response.NotFound(w, r, "maintenance event not found")
			return
		}
		response.InternalError(w, r, "unable to delete maintenance event")
		return
	}
	response.NoContent(w, r)
}

// CompleteEvent handles POST /v1/maintenance/{eventId}/complete. The
// service is recorded again as a fresh event carrying the planned
// interval forward.
func (h *MaintenanceHandler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	ev, err := h.maintenance.Complete(r.Context(), chi.URLParam(r, "eventId"), req.Odometer, req.PerformedAt.Time())
	if err != nil {
		if errors.Is(err, maintenance.ErrEventNotFound) {
			response.NotFound(w, r, "maintenance event not found")
			return
		}
		response.InternalError(w, r, "unable to complete maintenance")
		return
	}

	response.Created(w, r, "/v1/maintenance/"+ev.ID, models.NewMaintenanceEventResponse(ev))
}

// GetCatalog handles GET /v1/catalog.
func (h *MaintenanceHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.NewCatalogResponse(h.catalog.All()))
}
