package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Settings are stored as a single row keyed by a fixed id.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL settings repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the stored alert settings.
func (r *PostgresRepository) Get(ctx context.Context) (AlertSettings, error) {
	var s AlertSettings
	err := r.pool.QueryRow(ctx, `
		SELECT alert_days, alert_km FROM alert_settings WHERE id = 1
	`).Scan(&s.AlertDays, &s.AlertKm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AlertSettings{}, ErrSettingsNotFound
		}
		return AlertSettings{}, err
	}
	return s, nil
}

// Set stores the alert settings.
func (r *PostgresRepository) Set(ctx context.Context, s AlertSettings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO alert_settings (id, alert_days, alert_km)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET alert_days = $1, alert_km = $2
	`, s.AlertDays, s.AlertKm)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
