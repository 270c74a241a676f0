package maintenance

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// Events are kept in insertion order.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []*Event
}

// NewInMemoryRepository creates a new in-memory maintenance repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Get retrieves an event by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ev := range r.events {
		if ev.ID == id {
			cpy := *ev
			return &cpy, nil
		}
	}
	return nil, ErrEventNotFound
}

// ListByVehicle retrieves all events for a vehicle in insertion order.
func (r *InMemoryRepository) ListByVehicle(_ context.Context, vehicleID string) ([]*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Event
	for _, ev := range r.events {
		if ev.VehicleID == vehicleID {
			cpy := *ev
			result = append(result, &cpy)
		}
	}
	return result, nil
}

// Create creates a new event.
func (r *InMemoryRepository) Create(_ context.Context, ev *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *ev
	r.events = append(r.events, &cpy)
	return nil
}

// Update updates an existing event.
func (r *InMemoryRepository) Update(_ context.Context, ev *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.events {
		if existing.ID == ev.ID {
			cpy := *ev
			r.events[i] = &cpy
			return nil
		}
	}
	return ErrEventNotFound
}

// Delete deletes an event by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ev := range r.events {
		if ev.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteByVehicle deletes every event owned by a vehicle.
func (r *InMemoryRepository) DeleteByVehicle(_ context.Context, vehicleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, ev := range r.events {
		if ev.VehicleID != vehicleID {
			kept = append(kept, ev)
		}
	}
	r.events = kept
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
