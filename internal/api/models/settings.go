package models

import (
	"github.com/autocare/autocare/internal/settings"
)

// AlertSettingsRequest is the request body for updating alert windows.
type AlertSettingsRequest struct {
	AlertDays int `json:"alertDays"`
	AlertKm   int `json:"alertKm"`
}

// Validate validates the alert settings request.
func (r *AlertSettingsRequest) Validate() []FieldError {
	var errors []FieldError

	if r.AlertDays <= 0 {
		errors = append(errors, FieldError{Field: "alertDays", Message: "alertDays must be positive", Code: "OUT_OF_RANGE"})
	}
	if r.AlertKm <= 0 {
		errors = append(errors, FieldError{Field: "alertKm", Message: "alertKm must be positive", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// AlertSettingsResponse is the API representation of alert settings.
type AlertSettingsResponse struct {
	AlertDays int `json:"alertDays"`
	AlertKm   int `json:"alertKm"`
}

// NewAlertSettingsResponse converts domain alert settings.
func NewAlertSettingsResponse(s settings.AlertSettings) *AlertSettingsResponse {
	return &AlertSettingsResponse{
		AlertDays: s.AlertDays,
		AlertKm:   s.AlertKm,
	}
}
