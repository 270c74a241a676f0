package maintenance_test

import (
	"context"
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
)

type serviceFixture struct {
	maintenance   *maintenance.Service
	vehicles      *vehicle.Service
	notifications *notification.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	vehicleRepo := vehicle.NewInMemoryRepository()
	notifications := notification.NewService(notification.NewInMemoryRepository(), zerolog.Nop())
	alertSettings := settings.NewService(settings.ServiceConfig{
		Repository: settings.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})

	return &serviceFixture{
		maintenance: maintenance.NewService(maintenance.ServiceConfig{
			Repository:    maintenance.NewInMemoryRepository(),
			Vehicles:      vehicleRepo,
			Catalog:       catalog.Default(),
			Settings:      alertSettings,
			Notifications: notifications,
			Logger:        zerolog.Nop(),
		}),
		vehicles: vehicle.NewService(vehicle.ServiceConfig{
			Repository: vehicleRepo,
			Logger:     zerolog.Nop(),
		}),
		notifications: notifications,
	}
}

func (f *serviceFixture) addVehicle(t *testing.T, odometer int) *vehicle.Vehicle {
	t.Helper()
	v, err := f.vehicles.Create(context.Background(), vehicle.CreateInput{
		OwnerID:  "usr_local",
		Brand:    "Honda",
		Model:    "Civic",
		Year:     2020,
		Odometer: odometer,
	})
	require.NoError(t, err)
	return v
}

func TestLogCanonicalizesKind(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	v := f.addVehicle(t, 42000)

	ev, err := f.maintenance.Log(ctx, maintenance.LogInput{
		VehicleID:   v.ID,
		Kind:        "Oil Change",
		PerformedAt: time.Now(),
		Odometer:    42000,
	})
	require.NoError(t, err)

	assert.Contains(t, ev.ID, "evt_")
	assert.Equal(t, "oil_change", ev.KindID)
	assert.Equal(t, maintenance.StatusOK, ev.Status)

	entries, err := f.notifications.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, notification.TypeMaintenanceAdded, entries[0].Type)
	require.NotNil(t, entries[0].RelatedID)
	assert.Equal(t, ev.ID, *entries[0].RelatedID)
}

func TestLogUnknownVehicle(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.maintenance.Log(context.Background(), maintenance.LogInput{
		VehicleID:   "veh_missing",
		Kind:        "oil_change",
		PerformedAt: time.Now(),
	})
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)
}

func TestCompleteCarriesIntervalForward(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	v := f.addVehicle(t, 42000)

	performedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	dueDate := performedAt.AddDate(0, 0, 180)
	ev, err := f.maintenance.Log(ctx, maintenance.LogInput{
		VehicleID:       v.ID,
		Kind:            "oil_change",
		PerformedAt:     performedAt,
		Odometer:        42000,
		PlannedNextKm:   intPtr(50000),
		PlannedNextDate: &dueDate,
	})
	require.NoError(t, err)

	doneAt := performedAt.AddDate(0, 5, 0)
	next, err := f.maintenance.Complete(ctx, ev.ID, 49500, doneAt)
	require.NoError(t, err)

	assert.NotEqual(t, ev.ID, next.ID)
	assert.Equal(t, maintenance.StatusOK, next.Status)
	require.NotNil(t, next.PlannedNextKm)
	assert.Equal(t, 49500+8000, *next.PlannedNextKm)
	require.NotNil(t, next.PlannedNextDate)
	assert.Equal(t, doneAt.Add(dueDate.Sub(performedAt)), *next.PlannedNextDate)

	// The original event survives as history.
	events, err := f.maintenance.ListByVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReconcileVehiclePersistsTransitions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	v := f.addVehicle(t, 42000)

	ev, err := f.maintenance.Log(ctx, maintenance.LogInput{
		VehicleID:     v.ID,
		Kind:          "oil_change",
		PerformedAt:   time.Now().AddDate(0, -6, 0),
		Odometer:      40000,
		PlannedNextKm: intPtr(42000),
	})
	require.NoError(t, err)

	result, err := f.maintenance.ReconcileVehicle(ctx, v.ID, time.Now())
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, notification.TypeKmAlert, result.Notifications[0].Type)

	stored, err := f.maintenance.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusOverdue, stored.Status)

	// Second pass at the same odometer changes nothing.
	result, err = f.maintenance.ReconcileVehicle(ctx, v.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Notifications)
}

func TestDeleteByVehicleCascades(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	v := f.addVehicle(t, 42000)

	for i := 0; i < 3; i++ {
		_, err := f.maintenance.Log(ctx, maintenance.LogInput{
			VehicleID:   v.ID,
			Kind:        "oil_change",
			PerformedAt: time.Now(),
			Odometer:    42000,
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.maintenance.DeleteByVehicle(ctx, v.ID))

	events, err := f.maintenance.ListByVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAnalyzeThroughService(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	v := f.addVehicle(t, 45000)

	_, err := f.maintenance.Log(ctx, maintenance.LogInput{
		VehicleID:   v.ID,
		Kind:        "oil_change",
		PerformedAt: time.Now().AddDate(0, 0, -150),
		Odometer:    40000,
	})
	require.NoError(t, err)

	analysis, err := f.maintenance.Analyze(ctx, v.ID, time.Now())
	require.NoError(t, err)

	// 5000 of 10000 km and 5 of 12 months used: oil stays good and is
	// suppressed; everything else has no history.
	assert.Equal(t, maintenance.OverallInfo, analysis.Overall.Level)
	for _, rec := range analysis.Recommendations {
		assert.NotEqual(t, "oil_change", rec.KindID)
	}
}
