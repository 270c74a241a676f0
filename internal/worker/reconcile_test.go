package worker_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/vehicle"
	"github.com/autocare/autocare/internal/worker"
)

type fixture struct {
	vehicles      vehicle.Repository
	vehicleSvc    *vehicle.Service
	maintenance   *maintenance.Service
	notifications *notification.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.New(io.Discard)

	notificationService := notification.NewService(notification.NewInMemoryRepository(), logger)
	settingsService := settings.NewService(settings.ServiceConfig{
		Repository: settings.NewInMemoryRepository(),
		Logger:     logger,
	})
	vehicleRepo := vehicle.NewInMemoryRepository()
	vehicleService := vehicle.NewService(vehicle.ServiceConfig{
		Repository:    vehicleRepo,
		Notifications: notificationService,
		Logger:        logger,
	})
	maintenanceService := maintenance.NewService(maintenance.ServiceConfig{
		Repository:    maintenance.NewInMemoryRepository(),
		Vehicles:      vehicleRepo,
		Catalog:       catalog.Default(),
		Settings:      settingsService,
		Notifications: notificationService,
		Logger:        logger,
	})

	return &fixture{
		vehicles:      vehicleRepo,
		vehicleSvc:    vehicleService,
		maintenance:   maintenanceService,
		notifications: notificationService,
	}
}

func (f *fixture) addVehicleWithOverdueService(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	ctx := context.Background()

	v, err := f.vehicleSvc.Create(ctx, vehicle.CreateInput{
		OwnerID:  "usr_local",
		Brand:    "Fiat",
		Model:    "Uno",
		Odometer: 52000,
	})
	require.NoError(t, err)

	// Planned threshold already exceeded by the current odometer.
	plannedKm := 50000
	_, err = f.maintenance.Log(ctx, maintenance.LogInput{
		VehicleID:     v.ID,
		Kind:          "oil_change",
		PerformedAt:   time.Now().AddDate(0, -6, 0),
		Odometer:      42000,
		PlannedNextKm: &plannedKm,
	})
	require.NoError(t, err)

	return v
}

func TestReconcileJobRun(t *testing.T) {
	f := newFixture(t)
	f.addVehicleWithOverdueService(t)
	f.addVehicleWithOverdueService(t)

	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:             worker.ReconcileConfig{Concurrency: 2, Timeout: 5 * time.Second},
		Logger:             zerolog.New(io.Discard),
		Vehicles:           f.vehicles,
		MaintenanceService: f.maintenance,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 2, result.TotalVehicles)
	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Equal(t, 2, result.Transitions)
	assert.Equal(t, 2, result.Notifications)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(2), metrics.VehiclesReconciled)
}

func TestReconcileJobSecondRunEmitsNothing(t *testing.T) {
	f := newFixture(t)
	f.addVehicleWithOverdueService(t)

	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Logger:             zerolog.New(io.Discard),
		Vehicles:           f.vehicles,
		MaintenanceService: f.maintenance,
	})

	first := job.Run(context.Background())
	require.Equal(t, 1, first.Notifications)

	// Nothing changed since the first pass, so no transition fires again.
	second := job.Run(context.Background())
	assert.Zero(t, second.Transitions)
	assert.Zero(t, second.Notifications)
	assert.Equal(t, 1, second.Successful)
}

func TestReconcileJobEmptyFleet(t *testing.T) {
	f := newFixture(t)

	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Logger:             zerolog.New(io.Discard),
		Vehicles:           f.vehicles,
		MaintenanceService: f.maintenance,
	})

	result := job.Run(context.Background())

	assert.Zero(t, result.TotalVehicles)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
}
