package maintenance

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Insertion order is preserved via a serial sequence column.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL maintenance repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves an event by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Event, error) {
	query := `
		SELECT id, vehicle_id, kind_id, performed_at, odometer,
		       planned_next_km, planned_next_date, status, created_at, updated_at
		FROM maintenance_events
		WHERE id = $1
	`

	var ev Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ev.ID,
		&ev.VehicleID,
		&ev.KindID,
		&ev.PerformedAt,
		&ev.Odometer,
		&ev.PlannedNextKm,
		&ev.PlannedNextDate,
		&ev.Status,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ListByVehicle retrieves all events for a vehicle in insertion order.
func (r *PostgresRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*Event, error) {
	query := `
		SELECT id, vehicle_id, kind_id, performed_at, odometer,
		       planned_next_km, planned_next_date, status, created_at, updated_at
		FROM maintenance_events
		WHERE vehicle_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var ev Event
		err := rows.Scan(
			&ev.ID,
			&ev.VehicleID,
			&ev.KindID,
			&ev.PerformedAt,
			&ev.Odometer,
			&ev.PlannedNextKm,
			&ev.PlannedNextDate,
			&ev.Status,
			&ev.CreatedAt,
			&ev.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// Create creates a new event.
func (r *PostgresRepository) Create(ctx context.Context, ev *Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO maintenance_events
			(id, vehicle_id, kind_id, performed_at, odometer,
			 planned_next_km, planned_next_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, ev.ID, ev.VehicleID, ev.KindID, ev.PerformedAt, ev.Odometer,
		ev.PlannedNextKm, ev.PlannedNextDate, ev.Status, ev.CreatedAt, ev.UpdatedAt)
	return err
}

// Update updates an existing event.
func (r *PostgresRepository) Update(ctx context.Context, ev *Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE maintenance_events
		SET kind_id = $2, performed_at = $3, odometer = $4,
		    planned_next_km = $5, planned_next_date = $6, status = $7, updated_at = $8
		WHERE id = $1
	`, ev.ID, ev.KindID, ev.PerformedAt, ev.Odometer,
		ev.PlannedNextKm, ev.PlannedNextDate, ev.Status, ev.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete deletes an event by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM maintenance_events WHERE id = $1`, id)
	return err
}

// DeleteByVehicle deletes every event owned by a vehicle.
func (r *PostgresRepository) DeleteByVehicle(ctx context.Context, vehicleID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM maintenance_events WHERE vehicle_id = $1`, vehicleID)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
