package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/notification"
)

// ServiceConfig holds configuration for the vehicle service.
type ServiceConfig struct {
	Repository    Repository
	Notifications *notification.Service
	Logger        zerolog.Logger
}

// Service provides vehicle operations.
type Service struct {
	repo          Repository
	notifications *notification.Service
	logger        zerolog.Logger
}

// NewService creates a new vehicle service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:          cfg.Repository,
		notifications: cfg.Notifications,
		logger:        cfg.Logger,
	}
}

// CreateInput is the input for registering a vehicle.
type CreateInput struct {
	OwnerID  string
	Brand    string
	Model    string
	Plate    string
	Year     int
	Odometer int
}

// Create registers a new vehicle with its initial odometer reading as the
// first history entry.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Vehicle, error) {
	now := time.Now()
	v := &Vehicle{
		ID:       "veh_" + uuid.New().String()[:22],
		OwnerID:  input.OwnerID,
		Brand:    input.Brand,
		Model:    input.Model,
		Plate:    input.Plate,
		Year:     input.Year,
		Odometer: input.Odometer,
		OdometerHistory: []OdometerReading{
			{Km: input.Odometer, RecordedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		_, err := s.notifications.Append(ctx, &notification.Notification{
			Type:    notification.TypeVehicleAdded,
			Title:   "Vehicle added",
			Message: fmt.Sprintf("%s %s registered at %d km.", v.Brand, v.Model, v.Odometer),
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("vehicle_id", v.ID).Msg("failed to append notification")
		}
	}

	return v, nil
}

// Get retrieves a vehicle by ID.
func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves all vehicles for an owner.
func (s *Service) List(ctx context.Context, ownerID string) ([]*Vehicle, error) {
	return s.repo.List(ctx, ownerID)
}

// UpdateInput is the input for updating a vehicle's identifying fields.
// Nil fields are left unchanged. The odometer is updated exclusively through
// UpdateOdometer.
type UpdateInput struct {
	Brand *string
	Model *string
	Plate *string
	Year  *int
}

// Update updates a vehicle's identifying fields.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Vehicle, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		v.Brand = *input.Brand
	}
	if input.Model != nil {
		v.Model = *input.Model
	}
	if input.Plate != nil {
		v.Plate = *input.Plate
	}
	if input.Year != nil {
		v.Year = *input.Year
	}
	v.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateOdometer records a new odometer reading. Readings below the current
// value are rejected with ErrOdometerRegression and leave the vehicle
// unchanged; the odometer is monotonically non-decreasing.
func (s *Service) UpdateOdometer(ctx context.Context, id string, km int) (*Vehicle, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if km < v.Odometer {
		return nil, ErrOdometerRegression
	}

	now := time.Now()
	v.Odometer = km
	v.OdometerHistory = append(v.OdometerHistory, OdometerReading{Km: km, RecordedAt: now})
	v.UpdatedAt = now

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete deletes a vehicle. The caller is responsible for cascading the
// deletion to the vehicle's maintenance events.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
