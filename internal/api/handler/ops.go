// Package handler provides HTTP handlers for the AutoCare API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
)

// ReadinessCheckFunc verifies a backing dependency is reachable.
type ReadinessCheckFunc func(ctx context.Context) error

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	readiness map[string]ReadinessCheckFunc
}

// NewOpsHandler creates a new OpsHandler. The readiness map holds named
// dependency checks run on GET /v1/ops/ready; it may be nil.
func NewOpsHandler(version, buildTime string, readiness map[string]ReadinessCheckFunc) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		readiness: readiness,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := models.HealthStatusOK
	details := make(map[string]interface{}, len(h.readiness))
	for name, check := range h.readiness {
		if err := check(ctx); err != nil {
			status = models.HealthStatusFail
			details[name] = err.Error()
			continue
		}
		details[name] = "ok"
	}

	health := models.Health{
		Status:  status,
		Time:    models.Timestamp(time.Now()),
		Details: details,
	}

	code := http.StatusOK
	if status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	subsystems := make([]models.SubsystemStatus, 0, len(h.readiness))
	overall := models.HealthStatusOK
	for name, check := range h.readiness {
		st := models.HealthStatusOK
		var detail *string
		if err := check(r.Context()); err != nil {
			st = models.HealthStatusFail
			overall = models.HealthStatusDegraded
			msg := err.Error()
			detail = &msg
		}
		subsystems = append(subsystems, models.SubsystemStatus{Name: name, Status: st, Detail: detail})
	}

	status := models.SystemStatus{
		Status:     overall,
		Time:       now,
		Subsystems: subsystems,
		Providers: []models.ProviderStatus{
			{Provider: "places", Status: models.HealthStatusOK, LastSuccessAt: &now},
		},
	}
	response.JSON(w, r, http.StatusOK, status)
}
