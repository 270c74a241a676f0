package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocare/autocare/internal/provider"
)

func TestPlacesClientSearch(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":"prv_1","name":"Garage One","category":"mechanic","lat":-23.55,"lon":-46.63,"address":"Rua A 1","phone":"+55 11 1111-1111","rating":4.5,"distance":320.5}]}`))
	}))
	defer server.Close()

	client := provider.NewPlacesClient(provider.PlacesConfig{BaseURL: server.URL, APIKey: "test-key"})
	results, err := client.Search(context.Background(), provider.Query{
		Lat:      -23.555,
		Lon:      -46.64,
		Category: provider.CategoryMechanic,
		RadiusM:  5000,
		Limit:    10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "-23.555", gotQuery["lat"])
	assert.Equal(t, "-46.64", gotQuery["lon"])
	assert.Equal(t, "mechanic", gotQuery["category"])
	assert.Equal(t, "5000", gotQuery["radius"])
	assert.Equal(t, "10", gotQuery["limit"])

	require.Len(t, results, 1)
	assert.Equal(t, "prv_1", results[0].ID)
	assert.Equal(t, provider.CategoryMechanic, results[0].Category)
	assert.Equal(t, 320.5, results[0].DistanceMeters)
}

func TestPlacesClientOmitsOptionalParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("category"))
		assert.False(t, q.Has("radius"))
		assert.False(t, q.Has("limit"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := provider.NewPlacesClient(provider.PlacesConfig{BaseURL: server.URL})
	results, err := client.Search(context.Background(), provider.Query{Lat: 1, Lon: 2})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPlacesClientNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := provider.NewPlacesClient(provider.PlacesConfig{BaseURL: server.URL, APIKey: "bad"})
	_, err := client.Search(context.Background(), provider.Query{Lat: 1, Lon: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
