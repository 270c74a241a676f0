package maintenance

import "context"

// Repository defines the interface for maintenance event persistence.
// List order is insertion order: the analyzer relies on it for its
// latest-wins tie break.
type Repository interface {
	// Get retrieves an event by ID.
	// Returns ErrEventNotFound if the event does not exist.
	Get(ctx context.Context, id string) (*Event, error)

	// ListByVehicle retrieves all events for a vehicle in insertion order.
	ListByVehicle(ctx context.Context, vehicleID string) ([]*Event, error)

	// Create creates a new event.
	Create(ctx context.Context, ev *Event) error

	// Update updates an existing event.
	Update(ctx context.Context, ev *Event) error

	// Delete deletes an event by ID.
	Delete(ctx context.Context, id string) error

	// DeleteByVehicle deletes every event owned by a vehicle.
	DeleteByVehicle(ctx context.Context, vehicleID string) error
}
