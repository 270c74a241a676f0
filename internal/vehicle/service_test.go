package vehicle_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/vehicle"
)

func newTestService(t *testing.T) (*vehicle.Service, *notification.Service) {
	t.Helper()
	notifications := notification.NewService(notification.NewInMemoryRepository(), zerolog.Nop())
	svc := vehicle.NewService(vehicle.ServiceConfig{
		Repository:    vehicle.NewInMemoryRepository(),
		Notifications: notifications,
		Logger:        zerolog.Nop(),
	})
	return svc, notifications
}

func createVehicle(t *testing.T, svc *vehicle.Service, odometer int) *vehicle.Vehicle {
	t.Helper()
	v, err := svc.Create(context.Background(), vehicle.CreateInput{
		OwnerID:  "usr_local",
		Brand:    "Toyota",
		Model:    "Corolla",
		Plate:    "ABC1D23",
		Year:     2019,
		Odometer: odometer,
	})
	require.NoError(t, err)
	return v
}

func TestCreateVehicle(t *testing.T) {
	svc, notifications := newTestService(t)

	v := createVehicle(t, svc, 42000)

	assert.Contains(t, v.ID, "veh_")
	assert.Equal(t, 42000, v.Odometer)
	require.Len(t, v.OdometerHistory, 1)
	assert.Equal(t, 42000, v.OdometerHistory[0].Km)

	entries, err := notifications.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, notification.TypeVehicleAdded, entries[0].Type)
}

func TestGetUnknownVehicle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "veh_missing")
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)
}

func TestUpdateOdometerAppendsHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	v := createVehicle(t, svc, 42000)

	updated, err := svc.UpdateOdometer(ctx, v.ID, 43500)
	require.NoError(t, err)
	assert.Equal(t, 43500, updated.Odometer)
	require.Len(t, updated.OdometerHistory, 2)
	assert.Equal(t, 43500, updated.OdometerHistory[1].Km)

	// Repeating the same reading is allowed; the odometer is non-decreasing,
	// not strictly increasing.
	updated, err = svc.UpdateOdometer(ctx, v.ID, 43500)
	require.NoError(t, err)
	assert.Len(t, updated.OdometerHistory, 3)
}

func TestUpdateOdometerRejectsRegression(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	v := createVehicle(t, svc, 42000)

	_, err := svc.UpdateOdometer(ctx, v.ID, 41999)
	assert.ErrorIs(t, err, vehicle.ErrOdometerRegression)

	// A rejected reading leaves the vehicle untouched.
	current, err := svc.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 42000, current.Odometer)
	assert.Len(t, current.OdometerHistory, 1)
}

func TestUpdateFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	v := createVehicle(t, svc, 42000)

	model := "Yaris"
	updated, err := svc.Update(ctx, v.ID, vehicle.UpdateInput{Model: &model})
	require.NoError(t, err)
	assert.Equal(t, "Yaris", updated.Model)
	assert.Equal(t, "Toyota", updated.Brand)
	assert.Equal(t, 42000, updated.Odometer)
}

func TestListByOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	createVehicle(t, svc, 10000)
	createVehicle(t, svc, 20000)

	owned, err := svc.List(ctx, "usr_local")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	other, err := svc.List(ctx, "usr_other")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteVehicle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	v := createVehicle(t, svc, 42000)

	require.NoError(t, svc.Delete(ctx, v.ID))
	_, err := svc.Get(ctx, v.ID)
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, v.ID), vehicle.ErrVehicleNotFound)
}
