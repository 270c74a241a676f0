package settings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/settings"
)

type failingRepository struct{}

func (failingRepository) Get(context.Context) (settings.AlertSettings, error) {
	return settings.AlertSettings{}, errors.New("connection refused")
}

func (failingRepository) Set(context.Context, settings.AlertSettings) error {
	return errors.New("connection refused")
}

func TestGetFallsBackToDefaults(t *testing.T) {
	svc := settings.NewService(settings.ServiceConfig{
		Repository: settings.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})

	got := svc.Get(context.Background())
	assert.Equal(t, settings.Defaults(), got)
	assert.Equal(t, 7, got.AlertDays)
	assert.Equal(t, 500, got.AlertKm)
}

func TestGetFallsBackOnRepositoryError(t *testing.T) {
	svc := settings.NewService(settings.ServiceConfig{
		Repository: failingRepository{},
		Logger:     zerolog.Nop(),
	})

	assert.Equal(t, settings.Defaults(), svc.Get(context.Background()))
}

func TestUpdateRoundTrip(t *testing.T) {
	svc := settings.NewService(settings.ServiceConfig{
		Repository: settings.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})
	ctx := context.Background()

	custom := settings.AlertSettings{AlertDays: 14, AlertKm: 1000}
	require.NoError(t, svc.Update(ctx, custom))
	assert.Equal(t, custom, svc.Get(ctx))
}

func TestUpdateRefreshesCache(t *testing.T) {
	repo := settings.NewInMemoryRepository()
	svc := settings.NewService(settings.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   time.Hour,
	})
	ctx := context.Background()

	first := settings.AlertSettings{AlertDays: 3, AlertKm: 200}
	require.NoError(t, svc.Update(ctx, first))
	require.Equal(t, first, svc.Get(ctx))

	// The cache is still warm, but an update through the service replaces it
	// immediately.
	second := settings.AlertSettings{AlertDays: 21, AlertKm: 2000}
	require.NoError(t, svc.Update(ctx, second))
	assert.Equal(t, second, svc.Get(ctx))
}

func TestUpdateSurfacesRepositoryError(t *testing.T) {
	svc := settings.NewService(settings.ServiceConfig{
		Repository: failingRepository{},
		Logger:     zerolog.Nop(),
	})

	err := svc.Update(context.Background(), settings.AlertSettings{AlertDays: 1, AlertKm: 1})
	assert.Error(t, err)
}
