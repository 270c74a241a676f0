package models

import (
	"github.com/autocare/autocare/internal/vehicle"
)

// CreateVehicleRequest is the request body for registering a vehicle.
type CreateVehicleRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Year     int    `json:"year"`
	Odometer int    `json:"odometer"`
}

// Validate validates the create vehicle request.
func (r *CreateVehicleRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Brand == "" {
		errors = append(errors, FieldError{Field: "brand", Message: "brand is required", Code: "REQUIRED"})
	}
	if r.Model == "" {
		errors = append(errors, FieldError{Field: "model", Message: "model is required", Code: "REQUIRED"})
	}
	if r.Year != 0 && (r.Year < 1900 || r.Year > 2100) {
		errors = append(errors, FieldError{Field: "year", Message: "year is out of range", Code: "OUT_OF_RANGE"})
	}
	if r.Odometer < 0 {
		errors = append(errors, FieldError{Field: "odometer", Message: "odometer must not be negative", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// UpdateVehicleRequest is the request body for updating vehicle details.
// Absent fields are left unchanged; the odometer has its own endpoint.
type UpdateVehicleRequest struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Plate *string `json:"plate,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

// Validate validates the update vehicle request.
func (r *UpdateVehicleRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Brand != nil && *r.Brand == "" {
		errors = append(errors, FieldError{Field: "brand", Message: "brand must not be empty", Code: "REQUIRED"})
	}
	if r.Model != nil && *r.Model == "" {
		errors = append(errors, FieldError{Field: "model", Message: "model must not be empty", Code: "REQUIRED"})
	}
	if r.Year != nil && (*r.Year < 1900 || *r.Year > 2100) {
		errors = append(errors, FieldError{Field: "year", Message: "year is out of range", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// UpdateOdometerRequest is the request body for recording a new odometer
// reading.
type UpdateOdometerRequest struct {
	Odometer int `json:"odometer"`
}

// Validate validates the odometer update request.
func (r *UpdateOdometerRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Odometer < 0 {
		errors = append(errors, FieldError{Field: "odometer", Message: "odometer must not be negative", Code: "OUT_OF_RANGE"})
	}

	return errors
}

// OdometerReading is one entry in a vehicle's odometer history.
type OdometerReading struct {
	Km         int       `json:"km"`
	RecordedAt Timestamp `json:"recordedAt"`
}

// VehicleResponse is the API representation of a vehicle.
type VehicleResponse struct {
	ID              string            `json:"vehicleId"`
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Plate           string            `json:"plate,omitempty"`
	Year            int               `json:"year,omitempty"`
	Odometer        int               `json:"odometer"`
	OdometerHistory []OdometerReading `json:"odometerHistory,omitempty"`
	CreatedAt       Timestamp         `json:"createdAt"`
	UpdatedAt       Timestamp         `json:"updatedAt"`
}

// NewVehicleResponse converts a domain vehicle to its API representation.
func NewVehicleResponse(v *vehicle.Vehicle) *VehicleResponse {
	resp := &VehicleResponse{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Plate:     v.Plate,
		Year:      v.Year,
		Odometer:  v.Odometer,
		CreatedAt: Timestamp(v.CreatedAt),
		UpdatedAt: Timestamp(v.UpdatedAt),
	}
	for _, reading := range v.OdometerHistory {
		resp.OdometerHistory = append(resp.OdometerHistory, OdometerReading{
			Km:         reading.Km,
			RecordedAt: Timestamp(reading.RecordedAt),
		})
	}
	return resp
}

// NewVehicleListResponse converts a slice of domain vehicles.
func NewVehicleListResponse(vehicles []*vehicle.Vehicle) []*VehicleResponse {
	out := make([]*VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, NewVehicleResponse(v))
	}
	return out
}
