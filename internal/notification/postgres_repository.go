package notification

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a notification by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Notification, error) {
	query := `
		SELECT id, type, title, message, related_id, read, created_at
		FROM notifications
		WHERE id = $1
	`

	var n Notification
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.RelatedID,
		&n.Read,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// List retrieves all notifications, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Notification, error) {
	query := `
		SELECT id, type, title, message, related_id, read, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.RelatedID,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}

// Insert inserts a new notification.
func (r *PostgresRepository) Insert(ctx context.Context, n *Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, type, title, message, related_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.Type, n.Title, n.Message, n.RelatedID, n.Read, n.CreatedAt)
	return err
}

// Update updates an existing notification.
func (r *PostgresRepository) Update(ctx context.Context, n *Notification) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = $2 WHERE id = $1
	`, n.ID, n.Read)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// TrimToCap drops the oldest entries so at most max remain.
func (r *PostgresRepository) TrimToCap(ctx context.Context, max int) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE id NOT IN (
			SELECT id FROM notifications
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		)
	`, max)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
