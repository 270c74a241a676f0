package vehicle

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

// NewPostgresRepository creates a new PostgreSQL vehicle repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a vehicle by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Vehicle, error) {
	query := `
		SELECT id, owner_id, brand, model, plate, year, odometer, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	var v Vehicle
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.OwnerID,
		&v.Brand,
		&v.Model,
		&v.Plate,
		&v.Year,
		&v.Odometer,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	v.OdometerHistory = history

	return &v, nil
}

// List retrieves all vehicles for an owner, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*Vehicle, error) {
	query := `
		SELECT id, owner_id, brand, model, plate, year, odometer, created_at, updated_at
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	return r.queryVehicles(ctx, query, ownerID)
}

// ListAll retrieves every vehicle.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Vehicle, error) {
	query := `
		SELECT id, owner_id, brand, model, plate, year, odometer, created_at, updated_at
		FROM vehicles
		ORDER BY created_at DESC
	`
	return r.queryVehicles(ctx, query)
}

func (r *PostgresRepository) queryVehicles(ctx context.Context, query string, args ...interface{}) ([]*Vehicle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*Vehicle
	for rows.Next() {
		var v Vehicle
		err := rows.Scan(
			&v.ID,
			&v.OwnerID,
			&v.Brand,
			&v.Model,
			&v.Plate,
			&v.Year,
			&v.Odometer,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

func (r *PostgresRepository) loadHistory(ctx context.Context, vehicleID string) ([]OdometerReading, error) {
	query := `
		SELECT km, recorded_at
		FROM odometer_history
		WHERE vehicle_id = $1
		ORDER BY recorded_at ASC
	`

	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []OdometerReading
	for rows.Next() {
		var reading OdometerReading
		if err := rows.Scan(&reading.Km, &reading.RecordedAt); err != nil {
			return nil, err
		}
		history = append(history, reading)
	}
	return history, rows.Err()
}

// Create creates a new vehicle and its initial odometer history entry.
func (r *PostgresRepository) Create(ctx context.Context, v *Vehicle) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, `
		INSERT INTO vehicles (id, owner_id, brand, model, plate, year, odometer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, v.OwnerID, v.Brand, v.Model, v.Plate, v.Year, v.Odometer, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return err
	}

	for _, reading := range v.OdometerHistory {
		_, err = tx.Exec(ctx, `
			INSERT INTO odometer_history (vehicle_id, km, recorded_at)
			VALUES ($1, $2, $3)
		`, v.ID, reading.Km, reading.RecordedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update updates an existing vehicle. New odometer history entries are
// appended; the history table itself is append-only.
func (r *PostgresRepository) Update(ctx context.Context, v *Vehicle) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	tag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET brand = $2, model = $3, plate = $4, year = $5, odometer = $6, updated_at = $7
		WHERE id = $1
	`, v.ID, v.Brand, v.Model, v.Plate, v.Year, v.Odometer, v.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM odometer_history WHERE vehicle_id = $1`, v.ID).Scan(&count); err != nil {
		return err
	}
	if count > len(v.OdometerHistory) {
		count = len(v.OdometerHistory)
	}
	for _, reading := range v.OdometerHistory[count:] {
		_, err = tx.Exec(ctx, `
			INSERT INTO odometer_history (vehicle_id, km, recorded_at)
			VALUES ($1, $2, $3)
		`, v.ID, reading.Km, reading.RecordedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete deletes a vehicle by ID. Maintenance events and odometer history
// cascade via foreign keys.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
