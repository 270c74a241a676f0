package provider

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Service errors.
var (
	ErrInvalidQuery = errors.New("invalid provider search query")
)

// Searcher finds providers around a point.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Provider, error)
}

// Service provides provider search with validation on top of a Searcher.
type Service struct {
	searcher Searcher
	logger   zerolog.Logger
}

// NewService creates a new provider search service.
func NewService(searcher Searcher, logger zerolog.Logger) *Service {
	return &Service{searcher: searcher, logger: logger}
}

// Search validates the query and delegates to the configured searcher.
func (s *Service) Search(ctx context.Context, q Query) ([]Provider, error) {
	if q.Lat < -90 || q.Lat > 90 || q.Lon < -180 || q.Lon > 180 {
		return nil, ErrInvalidQuery
	}

	results, err := s.searcher.Search(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Float64("lat", q.Lat).Float64("lon", q.Lon).Msg("provider search failed")
		return nil, err
	}
	return results, nil
}
