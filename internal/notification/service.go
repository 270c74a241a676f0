package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service provides the notification log operations.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Append inserts a notification at the head of the log and enforces the
// size cap, dropping the oldest entries beyond MaxLogSize.
func (s *Service) Append(ctx context.Context, n *Notification) (*Notification, error) {
	if n.ID == "" {
		n.ID = "ntf_" + uuid.New().String()[:22]
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, err
	}
	if err := s.repo.TrimToCap(ctx, MaxLogSize); err != nil {
		// The entry itself is stored; over-cap entries are dropped on the
		// next successful trim.
		s.logger.Warn().Err(err).Msg("failed to trim notification log")
	}
	return n, nil
}

// List returns all notifications, newest first.
func (s *Service) List(ctx context.Context) ([]*Notification, error) {
	return s.repo.List(ctx)
}

// MarkRead marks a notification as read. It is idempotent: marking an
// already-read notification reports changed == false and performs no write.
func (s *Service) MarkRead(ctx context.Context, id string) (bool, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if n.Read {
		return false, nil
	}

	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

// MarkAllRead marks every unread notification as read and returns how many
// entries changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, n := range entries {
		if n.Read {
			continue
		}
		n.Read = true
		if err := s.repo.Update(ctx, n); err != nil {
			if errors.Is(err, ErrNotificationNotFound) {
				continue
			}
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range entries {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
