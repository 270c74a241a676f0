package settings

import "context"

// Repository defines the interface for alert settings persistence.
type Repository interface {
	// Get retrieves the stored alert settings.
	// Returns ErrSettingsNotFound when none have been saved yet.
	Get(ctx context.Context) (AlertSettings, error)

	// Set stores the alert settings.
	Set(ctx context.Context, s AlertSettings) error
}
