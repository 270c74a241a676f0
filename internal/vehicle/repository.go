package vehicle

import "context"

// Repository defines the interface for vehicle persistence.
type Repository interface {
	// Get retrieves a vehicle by ID.
	// Returns ErrVehicleNotFound if the vehicle does not exist.
	Get(ctx context.Context, id string) (*Vehicle, error)

	// List retrieves all vehicles for an owner, newest first.
	List(ctx context.Context, ownerID string) ([]*Vehicle, error)

	// ListAll retrieves every vehicle. Used by the reconcile worker.
	ListAll(ctx context.Context) ([]*Vehicle, error)

	// Create creates a new vehicle.
	Create(ctx context.Context, v *Vehicle) error

	// Update updates an existing vehicle, including its odometer history.
	Update(ctx context.Context, v *Vehicle) error

	// Delete deletes a vehicle by ID.
	Delete(ctx context.Context, id string) error
}
