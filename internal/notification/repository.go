package notification

import "context"

// Repository defines the interface for notification persistence.
// Ordering is newest first everywhere.
type Repository interface {
	// Get retrieves a notification by ID.
	// Returns ErrNotificationNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Notification, error)

	// List retrieves all notifications, newest first.
	List(ctx context.Context) ([]*Notification, error)

	// Insert inserts a notification at the head of the log.
	Insert(ctx context.Context, n *Notification) error

	// Update updates an existing notification (read state).
	Update(ctx context.Context, n *Notification) error

	// TrimToCap drops the oldest entries so at most max remain.
	TrimToCap(ctx context.Context, max int) error
}
