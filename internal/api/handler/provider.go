package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
	"github.com/autocare/autocare/internal/provider"
)

// ProviderHandler handles service provider search endpoints.
type ProviderHandler struct {
	providers *provider.Service
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providers *provider.Service) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// SearchProviders handles GET /v1/providers/search.
func (h *ProviderHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, r, "lat is required and must be a number", nil)
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		response.BadRequest(w, r, "lon is required and must be a number", nil)
		return
	}

	query := provider.Query{
		Lat:      lat,
		Lon:      lon,
		Category: provider.Category(q.Get("category")),
	}
	if raw := q.Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			response.BadRequest(w, r, "radius must be a positive number", nil)
			return
		}
		query.RadiusM = radius
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.BadRequest(w, r, "limit must be a positive integer", nil)
			return
		}
		query.Limit = limit
	}

	results, err := h.providers.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidQuery) {
			response.BadRequest(w, r, "invalid search coordinates", nil)
			return
		}
		response.ServiceUnavailable(w, r, "provider search unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewProviderListResponse(results))
}
