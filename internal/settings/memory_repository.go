package settings

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	saved *AlertSettings
}

// NewInMemoryRepository creates a new in-memory settings repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Get retrieves the stored alert settings.
func (r *InMemoryRepository) Get(_ context.Context) (AlertSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.saved == nil {
		return AlertSettings{}, ErrSettingsNotFound
	}
	return *r.saved, nil
}

// Set stores the alert settings.
func (r *InMemoryRepository) Set(_ context.Context, s AlertSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := s
	r.saved = &cpy
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
