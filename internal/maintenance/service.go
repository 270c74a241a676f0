package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/vehicle"
)

// ServiceConfig holds configuration for the maintenance service.
type ServiceConfig struct {
	Repository    Repository
	Vehicles      vehicle.Repository
	Catalog       *catalog.Catalog
	Settings      *settings.Service
	Notifications *notification.Service
	Logger        zerolog.Logger
}

// Service provides maintenance event operations, vehicle analysis and the
// reconcile entrypoint. Reconcile-and-persist sequences are serialized per
// vehicle so concurrent passes cannot interleave stale status reads.
type Service struct {
	repo          Repository
	vehicles      vehicle.Repository
	catalog       *catalog.Catalog
	settings      *settings.Service
	notifications *notification.Service
	reconciler    *Reconciler
	logger        zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new maintenance service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:          cfg.Repository,
		vehicles:      cfg.Vehicles,
		catalog:       cfg.Catalog,
		settings:      cfg.Settings,
		notifications: cfg.Notifications,
		reconciler:    NewReconciler(cfg.Catalog, cfg.Logger),
		logger:        cfg.Logger,
		locks:         make(map[string]*sync.Mutex),
	}
}

// LogInput is the input for logging a completed service.
type LogInput struct {
	VehicleID       string
	Kind            string // free-form; canonicalized against the catalog
	PerformedAt     time.Time
	Odometer        int
	PlannedNextKm   *int
	PlannedNextDate *time.Time
}

// Log records a completed maintenance service and emits a log-entry
// notification.
func (s *Service) Log(ctx context.Context, input LogInput) (*Event, error) {
	v, err := s.vehicles.Get(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ev := &Event{
		ID:              "evt_" + uuid.New().String()[:22],
		VehicleID:       v.ID,
		KindID:          catalog.CanonicalID(input.Kind),
		PerformedAt:     input.PerformedAt,
		Odometer:        input.Odometer,
		PlannedNextKm:   input.PlannedNextKm,
		PlannedNextDate: input.PlannedNextDate,
		Status:          StatusOK,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}

	s.notify(ctx, &notification.Notification{
		Type:      notification.TypeMaintenanceAdded,
		Title:     "Maintenance logged",
		Message:   fmt.Sprintf("%s recorded for %s %s at %d km.", s.kindName(ev.KindID), v.Brand, v.Model, ev.Odometer),
		RelatedID: &ev.ID,
	})

	return ev, nil
}

// Get retrieves an event by ID.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.Get(ctx, id)
}

// ListByVehicle retrieves all events for a vehicle.
func (s *Service) ListByVehicle(ctx context.Context, vehicleID string) ([]*Event, error) {
	return s.repo.ListByVehicle(ctx, vehicleID)
}

// Complete marks an event as done: it duplicates the record with the new
// date and odometer reading, carries the planned interval forward and resets
// the status to ok. The original event is left untouched as history.
func (s *Service) Complete(ctx context.Context, eventID string, odometer int, performedAt time.Time) (*Event, error) {
	prev, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	next := &Event{
		ID:          "evt_" + uuid.New().String()[:22],
		VehicleID:   prev.VehicleID,
		KindID:      prev.KindID,
		PerformedAt: performedAt,
		Odometer:    odometer,
		Status:      StatusOK,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Carry the planned interval forward relative to the new baseline.
	if prev.PlannedNextKm != nil {
		step := *prev.PlannedNextKm - prev.Odometer
		if step > 0 {
			due := odometer + step
			next.PlannedNextKm = &due
		}
	}
	if prev.PlannedNextDate != nil {
		step := prev.PlannedNextDate.Sub(prev.PerformedAt)
		if step > 0 {
			due := performedAt.Add(step)
			next.PlannedNextDate = &due
		}
	}

	if err := s.repo.Create(ctx, next); err != nil {
		return nil, err
	}

	s.notify(ctx, &notification.Notification{
		Type:      notification.TypeMaintenanceAdded,
		Title:     "Maintenance completed",
		Message:   fmt.Sprintf("%s marked as done at %d km.", s.kindName(next.KindID), odometer),
		RelatedID: &next.ID,
	})

	return next, nil
}

// Delete deletes an event by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByVehicle deletes every event owned by a vehicle. Called when the
// owning vehicle is deleted; events never outlive their vehicle.
func (s *Service) DeleteByVehicle(ctx context.Context, vehicleID string) error {
	return s.repo.DeleteByVehicle(ctx, vehicleID)
}

// Analyze computes the full advisory analysis for one vehicle against the
// catalog intervals.
func (s *Service) Analyze(ctx context.Context, vehicleID string, now time.Time) (*Analysis, error) {
	v, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return AnalyzeVehicle(v, events, s.catalog, now), nil
}

// ReconcileVehicle runs one reconcile pass for the vehicle: recomputes every
// event's alert status, persists changes and appends notifications for
// transitions. Passes for the same vehicle are serialized.
func (s *Service) ReconcileVehicle(ctx context.Context, vehicleID string, now time.Time) (ReconcileResult, error) {
	lock := s.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	v, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return ReconcileResult{}, err
	}
	events, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return ReconcileResult{}, err
	}

	alert := s.settings.Get(ctx)
	result := s.reconciler.Reconcile(v, events, alert, now)

	for _, ev := range result.UpdatedEvents {
		if err := s.repo.Update(ctx, ev); err != nil {
			return result, fmt.Errorf("persisting event %s: %w", ev.ID, err)
		}
	}
	for _, n := range result.Notifications {
		s.notify(ctx, n)
	}

	return result, nil
}

// vehicleLock returns the serialization lock for one vehicle.
func (s *Service) vehicleLock(vehicleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[vehicleID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[vehicleID] = lock
	}
	return lock
}

func (s *Service) kindName(kindID string) string {
	if def := s.catalog.Get(kindID); def != nil {
		return def.Name
	}
	return kindID
}

// notify appends to the notification log, logging failures instead of
// propagating them: alerting must never fail a write path.
func (s *Service) notify(ctx context.Context, n *notification.Notification) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Append(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("type", string(n.Type)).Msg("failed to append notification")
	}
}
