package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/catalog"
)

func TestDefaultCatalog(t *testing.T) {
	cat := catalog.Default()

	defs := cat.All()
	require.NotEmpty(t, defs)
	assert.Equal(t, "oil_change", defs[0].ID)

	oil := cat.Get("oil_change")
	require.NotNil(t, oil)
	require.NotNil(t, oil.IntervalKm)
	assert.Equal(t, 10000, *oil.IntervalKm)
	require.NotNil(t, oil.IntervalMonths)
	assert.Equal(t, 12, *oil.IntervalMonths)

	// Battery is time-only, spark plugs are distance-only.
	battery := cat.Get("battery_replacement")
	require.NotNil(t, battery)
	assert.Nil(t, battery.IntervalKm)
	require.NotNil(t, battery.IntervalMonths)

	plugs := cat.Get("spark_plugs")
	require.NotNil(t, plugs)
	require.NotNil(t, plugs.IntervalKm)
	assert.Nil(t, plugs.IntervalMonths)

	// Every definition carries a message for every level.
	for _, def := range defs {
		for _, level := range []catalog.Level{catalog.LevelGood, catalog.LevelWarning, catalog.LevelDanger, catalog.LevelUnknown} {
			assert.NotEmpty(t, def.Messages[level], "%s missing %s message", def.ID, level)
		}
	}
}

func TestGetUnknownKind(t *testing.T) {
	assert.Nil(t, catalog.Default().Get("flux_capacitor"))
}

func TestAllPreservesOrder(t *testing.T) {
	cat := catalog.Default()

	first := cat.All()
	second := cat.All()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"oil", "oil_change"},
		{"Oil Change", "oil_change"},
		{"  TIRES  ", "tire_rotation"},
		{"brakes", "brake_service"},
		{"battery", "battery_replacement"},
		{"oil_change", "oil_change"},
		{"Something Custom", "something custom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.CanonicalID(tt.in), "input %q", tt.in)
	}
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	cat := catalog.New([]*catalog.Definition{
		{ID: "oil_change", Name: "first"},
		{ID: "oil_change", Name: "second"},
	})

	require.Len(t, cat.All(), 1)
	assert.Equal(t, "first", cat.Get("oil_change").Name)
}
