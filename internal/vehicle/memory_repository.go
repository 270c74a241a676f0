package vehicle

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local mode. Production should use
// PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*Vehicle
}

// NewInMemoryRepository creates a new in-memory vehicle repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{vehicles: make(map[string]*Vehicle)}
}

// Get retrieves a vehicle by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return copyVehicle(v), nil
}

// List retrieves all vehicles for an owner, newest first.
func (r *InMemoryRepository) List(_ context.Context, ownerID string) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Vehicle
	for _, v := range r.vehicles {
		if v.OwnerID == ownerID {
			result = append(result, copyVehicle(v))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListAll retrieves every vehicle.
func (r *InMemoryRepository) ListAll(_ context.Context) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		result = append(result, copyVehicle(v))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Create creates a new vehicle.
func (r *InMemoryRepository) Create(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vehicles[v.ID] = copyVehicle(v)
	return nil
}

// Update updates an existing vehicle.
func (r *InMemoryRepository) Update(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[v.ID]; !ok {
		return ErrVehicleNotFound
	}
	r.vehicles[v.ID] = copyVehicle(v)
	return nil
}

// Delete deletes a vehicle by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.vehicles, id)
	return nil
}

func copyVehicle(v *Vehicle) *Vehicle {
	cpy := *v
	cpy.OdometerHistory = make([]OdometerReading, len(v.OdometerHistory))
	copy(cpy.OdometerHistory, v.OdometerHistory)
	return &cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
