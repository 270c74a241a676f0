package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/vehicle"
)

// VehicleHandler handles vehicle CRUD, odometer updates, analysis and
// reconciliation endpoints.
type VehicleHandler struct {
	vehicles    *vehicle.Service
	maintenance *maintenance.Service
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *vehicle.Service, maint *maintenance.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, maintenance: maint}
}

// ListVehicles handles GET /v1/vehicles.
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context(), GetUserID(r.Context()))
	if err != nil {
		response.InternalError(w, r, "unable to list vehicles")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVehicleListResponse(vehicles))
}

// CreateVehicle handles POST /v1/vehicles.
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	v, err := h.vehicles.Create(r.Context(), vehicle.CreateInput{
		OwnerID:  GetUserID(r.Context()),
		Brand:    req.Brand,
		Model:    req.Model,
		Plate:    req.Plate,
		Year:     req.Year,
		Odometer: req.Odometer,
	})
	if err != nil {
		response.InternalError(w, r, "unable to create vehicle")
		return
	}

	response.Created(w, r, "/v1/vehicles/"+v.ID, models.NewVehicleResponse(v))
}

// GetVehicle handles GET /v1/vehicles/{vehicleId}.
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.Get(r.Context(), chi.URLParam(r, "vehicleId"))
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to load vehicle")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVehicleResponse(v))
}

// UpdateVehicle handles PUT /v1/vehicles/{vehicleId}.
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	v, err := h.vehicles.Update(r.Context(), chi.URLParam(r, "vehicleId"), vehicle.UpdateInput{
		Brand: req.Brand,
		Model: req.Model,
		Plate: req.Plate,
		Year:  req.Year,
	})
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to update vehicle")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewVehicleResponse(v))
}

// DeleteVehicle handles DELETE /v1/vehicles/{vehicleId}. Deleting a
// vehicle cascades to its maintenance events.
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleId")

	if err := h.vehicles.Delete(r.Context(), vehicleID); err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to delete vehicle")
		return
	}
	if err := h.maintenance.DeleteByVehicle(r.Context(), vehicleID); err != nil {
		response.InternalError(w, r, "unable to delete maintenance history")
		return
	}
	response.NoContent(w, r)
}

// UpdateOdometer handles POST /v1/vehicles/{vehicleId}/odometer.
// Readings below the current value are rejected with 409.
func (h *VehicleHandler) UpdateOdometer(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOdometerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	vehicleID := chi.URLParam(r, "vehicleId")
	v, err := h.vehicles.UpdateOdometer(r.Context(), vehicleID, req.Odometer)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrVehicleNotFound):
			response.NotFound(w, r, "vehicle not found")
		case errors.Is(err, vehicle.ErrOdometerRegression):
			response.Conflict(w, r, "odometer reading below current value")
		default:
			response.InternalError(w, r, "unable to update odometer")
		}
		return
	}

	// A new reading may push events over their alert thresholds.
	if _, err := h.maintenance.ReconcileVehicle(r.Context(), vehicleID, time.Now()); err != nil {
		response.InternalError(w, r, "unable to reconcile maintenance status")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewVehicleResponse(v))
}

// GetAnalysis handles GET /v1/vehicles/{vehicleId}/analysis.
func (h *VehicleHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.maintenance.Analyze(r.Context(), chi.URLParam(r, "vehicleId"), time.Now())
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to analyze vehicle")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewAnalysisResponse(analysis))
}

// Reconcile handles POST /v1/vehicles/{vehicleId}/reconcile.
func (h *VehicleHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleId")

	result, err := h.maintenance.ReconcileVehicle(r.Context(), vehicleID, time.Now())
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			response.NotFound(w, r, "vehicle not found")
			return
		}
		response.InternalError(w, r, "unable to reconcile maintenance status")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ReconcileResponse{
		VehicleID:     vehicleID,
		Changed:       result.Changed,
		UpdatedEvents: len(result.UpdatedEvents),
		Notifications: len(result.Notifications),
	})
}
