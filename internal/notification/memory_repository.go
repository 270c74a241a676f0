package notification

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// Entries are held newest first.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Notification
}

// NewInMemoryRepository creates a new in-memory notification repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Get retrieves a notification by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.entries {
		if n.ID == id {
			cpy := *n
			return &cpy, nil
		}
	}
	return nil, ErrNotificationNotFound
}

// List retrieves all notifications, newest first.
func (r *InMemoryRepository) List(_ context.Context) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Notification, 0, len(r.entries))
	for _, n := range r.entries {
		cpy := *n
		result = append(result, &cpy)
	}
	return result, nil
}

// Insert inserts a notification at the head of the log.
func (r *InMemoryRepository) Insert(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *n
	r.entries = append([]*Notification{&cpy}, r.entries...)
	return nil
}

// Update updates an existing notification.
func (r *InMemoryRepository) Update(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.entries {
		if existing.ID == n.ID {
			cpy := *n
			r.entries[i] = &cpy
			return nil
		}
	}
	return ErrNotificationNotFound
}

// TrimToCap drops the oldest entries so at most max remain.
func (r *InMemoryRepository) TrimToCap(_ context.Context, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) > max {
		r.entries = r.entries[:max]
	}
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
