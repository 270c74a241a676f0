package settings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the settings service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger
	CacheTTL   time.Duration // How long to cache settings in memory
}

// Service provides alert settings with caching and fallback to defaults.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	cached      *AlertSettings
	cacheExpiry time.Time
}

// NewService creates a new settings service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	return &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
	}
}

// Get returns the current alert settings.
// Uses the cached value if not expired, falls back to Defaults when the
// repository has no saved settings or fails.
func (s *Service) Get(ctx context.Context) AlertSettings {
	s.mu.RLock()
	if s.cached != nil && time.Now().Before(s.cacheExpiry) {
		cached := *s.cached
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			s.logger.Warn().Err(err).Msg("failed to load alert settings, using defaults")
		}
		return Defaults()
	}

	s.setCached(stored)
	return stored
}

// Update stores new alert settings and refreshes the cache.
func (s *Service) Update(ctx context.Context, settings AlertSettings) error {
	if err := s.repo.Set(ctx, settings); err != nil {
		return err
	}
	s.setCached(settings)
	return nil
}

func (s *Service) setCached(settings AlertSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpy := settings
	s.cached = &cpy
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
}
