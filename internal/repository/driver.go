package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/domain"
)

const driverColumns = `driver_id, name, latitude, longitude, is_available, status, COALESCE(user_id, '')`

// DriverRepo represents the driver location registry.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

// Get - returns a driver registry row by its ID.
func (r *DriverRepo) Get(ctx context.Context, driverID string) (*domain.DriverLocation, error) {
	var d domain.DriverLocation
	err := r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM driver_locations WHERE driver_id=$1`, driverID,
	).Scan(&d.DriverID, &d.Name, &d.Latitude, &d.Longitude, &d.Available, &d.Status, &d.UserID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %q: %w", driverID, err)
	}
	return &d, nil
}

// Upsert registers a driver on its first ping or updates its
// coordinates afterwards. Availability and onboarding status are left
// untouched for existing rows.
func (r *DriverRepo) Upsert(ctx context.Context, ping domain.LocationPing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO driver_locations (driver_id, name, latitude, longitude, is_available, status, user_id)
        VALUES ($1, COALESCE($2, ''), $3, $4, TRUE, $5, $6)
        ON CONFLICT (driver_id) DO UPDATE SET
            latitude   = EXCLUDED.latitude,
            longitude  = EXCLUDED.longitude,
            name       = COALESCE($2, driver_locations.name),
            user_id    = COALESCE($6, driver_locations.user_id),
            updated_at = now()
    `, ping.DriverID, ping.Name, ping.Latitude, ping.Longitude, string(domain.StatusPending), ping.UserID)
	if err != nil {
		return fmt.Errorf("upsert driver %q: %w", ping.DriverID, err)
	}
	return nil
}

// List returns all driver registry rows in registration order.
func (r *DriverRepo) List(ctx context.Context) ([]domain.DriverLocation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+driverColumns+` FROM driver_locations ORDER BY registered_at, driver_id`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	return scanDrivers(rows)
}

// ListByStatus returns driver registry rows with the given onboarding status.
func (r *DriverRepo) ListByStatus(ctx context.Context, status domain.DriverStatus) ([]domain.DriverLocation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+driverColumns+` FROM driver_locations WHERE status=$1 ORDER BY registered_at, driver_id`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("list drivers by status %q: %w", status, err)
	}
	defer rows.Close()
	return scanDrivers(rows)
}

// SetStatus - updates a driver's onboarding status.
func (r *DriverRepo) SetStatus(ctx context.Context, driverID string, status domain.DriverStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE driver_locations
        SET status = $2, updated_at = now()
        WHERE driver_id = $1
    `, driverID, string(status))
	if err != nil {
		return false, fmt.Errorf("set driver %q status: %w", driverID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetAvailability - flips a driver's availability flag.
func (r *DriverRepo) SetAvailability(ctx context.Context, driverID string, available bool) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE driver_locations
        SET is_available = $2, updated_at = now()
        WHERE driver_id = $1
    `, driverID, available)
	if err != nil {
		return false, fmt.Errorf("set driver %q availability: %w", driverID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete - removes a driver registry row.
func (r *DriverRepo) Delete(ctx context.Context, driverID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM driver_locations WHERE driver_id=$1`, driverID)
	if err != nil {
		return false, fmt.Errorf("delete driver %q: %w", driverID, err)
	}
	return ct.RowsAffected() > 0, nil
}

type driverRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanDrivers(rows driverRows) ([]domain.DriverLocation, error) {
	out := make([]domain.DriverLocation, 0)
	for rows.Next() {
		var d domain.DriverLocation
		if err := rows.Scan(&d.DriverID, &d.Name, &d.Latitude, &d.Longitude, &d.Available, &d.Status, &d.UserID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
