package models

import (
	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/maintenance"
)

// LogMaintenanceRequest is the request body for logging a performed
// service.
type LogMaintenanceRequest struct {
	KindID          string     `json:"kindId"`
	PerformedAt     Timestamp  `json:"performedAt"`
	Odometer        int        `json:"odometer"`
	PlannedNextKm   *int       `json:"plannedNextKm,omitempty"`
	PlannedNextDate *Timestamp `json:"plannedNextDate,omitempty"`
}

// Validate validates the log maintenance request.
func (r *LogMaintenanceRequest) Validate() []FieldError {
	var errors []FieldError

	if r.KindID == "" {
		errors = append(errors, FieldError{Field: "kindId", Message: "kindId is required", Code: "REQUIRED"})
	}
	if r.PerformedAt.Time().IsZero() {
		errors = append(errors, FieldError{Field: "performedAt", Message: "performedAt is required", Code: "REQUIRED"})
	}
	if r.Odometer < 0 {
		errors = append(errors, FieldError{Field: "odometer", Message: "odometer must not be negative", Code: "OUT_OF_RANGE"})
	}
	if r.PlannedNextKm != nil && *r.PlannedNextKm <= r.Odometer {
		errors = append(errors, FieldError{Field: "plannedNextKm", Message: "plannedNextKm must be greater than odometer", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// CompleteMaintenanceRequest is the request body for marking an event's
// service as done again.
type CompleteMaintenanceRequest struct {
	PerformedAt Timestamp `json:"performedAt"`
	Odometer    int       `json:"odometer"`
}

// Validate validates the complete maintenance request.
func (r *CompleteMaintenanceRequest) Validate() []FieldError {
	var errors []FieldError

	if r.PerformedAt.Time().IsZero() {
		errors = append(errors, FieldError{Field: "performedAt", Message: "performedAt is required", Code: "REQUIRED"})
	}
	if r.Odometer < 0 {
		errors = append(errors, FieldError{Field: "odometer", Message: "odometer must not be negative", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// MaintenanceEventResponse is the API representation of a maintenance
// event.
type MaintenanceEventResponse struct {
	ID              string     `json:"eventId"`
	VehicleID       string     `json:"vehicleId"`
	KindID          string     `json:"kindId"`
	PerformedAt     Timestamp  `json:"performedAt"`
	Odometer        int        `json:"odometer"`
	PlannedNextKm   *int       `json:"plannedNextKm,omitempty"`
	PlannedNextDate *Timestamp `json:"plannedNextDate,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       Timestamp  `json:"createdAt"`
	UpdatedAt       Timestamp  `json:"updatedAt"`
}

// NewMaintenanceEventResponse converts a domain event.
func NewMaintenanceEventResponse(ev *maintenance.Event) *MaintenanceEventResponse {
	resp := &MaintenanceEventResponse{
		ID:          ev.ID,
		VehicleID:   ev.VehicleID,
		KindID:      ev.KindID,
		PerformedAt: Timestamp(ev.PerformedAt),
		Odometer:    ev.Odometer,
		Status:      string(ev.Status),
		CreatedAt:   Timestamp(ev.CreatedAt),
		UpdatedAt:   Timestamp(ev.UpdatedAt),
	}
	resp.PlannedNextKm = ev.PlannedNextKm
	if ev.PlannedNextDate != nil {
		ts := Timestamp(*ev.PlannedNextDate)
		resp.PlannedNextDate = &ts
	}
	return resp
}

// NewMaintenanceEventListResponse converts a slice of domain events.
func NewMaintenanceEventListResponse(events []*maintenance.Event) []*MaintenanceEventResponse {
	out := make([]*MaintenanceEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, NewMaintenanceEventResponse(ev))
	}
	return out
}

// VerdictResponse is the API representation of one maintenance kind's
// derived status.
type VerdictResponse struct {
	KindID       string     `json:"kindId"`
	KindName     string     `json:"kindName"`
	Level        string     `json:"level"`
	WearPercent  int        `json:"wearPercent"`
	KmDriven     *int       `json:"kmDriven,omitempty"`
	MonthsPassed *float64   `json:"monthsPassed,omitempty"`
	NextDueKm    *int       `json:"nextDueKm,omitempty"`
	NextDueDate  *Timestamp `json:"nextDueDate,omitempty"`
	Message      string     `json:"message,omitempty"`
}

func newVerdictResponse(v maintenance.Verdict) *VerdictResponse {
	resp := &VerdictResponse{
		KindID:       v.KindID,
		KindName:     v.KindName,
		Level:        string(v.Level),
		WearPercent:  v.WearPercent,
		KmDriven:     v.KmDriven,
		MonthsPassed: v.MonthsPassed,
		NextDueKm:    v.NextDueKm,
		Message:      v.Message,
	}
	if v.NextDueDate != nil {
		ts := Timestamp(*v.NextDueDate)
		resp.NextDueDate = &ts
	}
	return resp
}

// AnalysisResponse is the API representation of a vehicle analysis.
type AnalysisResponse struct {
	VehicleID       string             `json:"vehicleId"`
	OverallLevel    string             `json:"overallLevel"`
	OverallTitle    string             `json:"overallTitle"`
	OverallSubtitle string             `json:"overallSubtitle"`
	Recommendations []*VerdictResponse `json:"recommendations"`
	NextAction      *VerdictResponse   `json:"nextAction,omitempty"`
}

// NewAnalysisResponse converts a domain analysis.
func NewAnalysisResponse(a *maintenance.Analysis) *AnalysisResponse {
	resp := &AnalysisResponse{
		VehicleID:       a.VehicleID,
		OverallLevel:    string(a.Overall.Level),
		OverallTitle:    a.Overall.Title,
		OverallSubtitle: a.Overall.Subtitle,
		Recommendations: make([]*VerdictResponse, 0, len(a.Recommendations)),
	}
	for _, v := range a.Recommendations {
		resp.Recommendations = append(resp.Recommendations, newVerdictResponse(v))
	}
	if a.NextAction != nil {
		resp.NextAction = newVerdictResponse(*a.NextAction)
	}
	return resp
}

// ReconcileResponse reports the outcome of a reconcile pass.
type ReconcileResponse struct {
	VehicleID     string `json:"vehicleId"`
	Changed       bool   `json:"changed"`
	UpdatedEvents int    `json:"updatedEvents"`
	Notifications int    `json:"notifications"`
}

// CatalogEntryResponse is the API representation of one catalog entry.
type CatalogEntryResponse struct {
	ID             string `json:"kindId"`
	Name           string `json:"name"`
	IntervalKm     *int   `json:"intervalKm,omitempty"`
	IntervalMonths *int   `json:"intervalMonths,omitempty"`
}

// NewCatalogResponse converts catalog definitions.
func NewCatalogResponse(defs []*catalog.Definition) []*CatalogEntryResponse {
	out := make([]*CatalogEntryResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, &CatalogEntryResponse{
			ID:             def.ID,
			Name:           def.Name,
			IntervalKm:     def.IntervalKm,
			IntervalMonths: def.IntervalMonths,
		})
	}
	return out
}
