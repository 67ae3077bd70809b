package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

const deliveryColumns = `id, order_id, driver_id, shop_lat, shop_lon, dest_lat, dest_lon, driver_lat, driver_lon, is_delivered, assigned_at`

// DeliveryRepo represents the delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// ListCompletedByDriver returns archived deliveries for a driver in
// insertion order.
func (r *DeliveryRepo) ListCompletedByDriver(ctx context.Context, driverID string) ([]domain.CompletedDelivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, driver_id, dest_lat, dest_lon, is_delivered, completed_at
        FROM completed_deliveries
        WHERE driver_id = $1
        ORDER BY id
    `, driverID)
	if err != nil {
		return nil, fmt.Errorf("list completed by driver %q: %w", driverID, err)
	}
	defer rows.Close()

	out := make([]domain.CompletedDelivery, 0)
	for rows.Next() {
		var cd domain.CompletedDelivery
		if err := rows.Scan(&cd.ID, &cd.OrderID, &cd.DriverID, &cd.Dest.Lat, &cd.Dest.Lon, &cd.Delivered, &cd.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// DeleteCompletedByOrder removes an archived delivery, returning true
// if a row was deleted.
func (r *DeliveryRepo) DeleteCompletedByOrder(ctx context.Context, orderID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM completed_deliveries WHERE order_id=$1`, orderID)
	if err != nil {
		return false, fmt.Errorf("delete completed by order %q: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// TxRepo represents the transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// ListAvailableDrivers - the dispatch candidate pool: approved drivers
// currently available, in registration order so distance ties resolve
// deterministically.
func (r *TxRepo) ListAvailableDrivers(ctx context.Context) ([]domain.DriverLocation, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+driverColumns+`
        FROM driver_locations
        WHERE is_available = TRUE AND status = $1
        ORDER BY registered_at, driver_id
    `, string(domain.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("list available drivers: %w", err)
	}
	defer rows.Close()
	return scanDrivers(rows)
}

// ClaimDriver - compare-and-set claim of a driver: only flips
// availability if it is still true. Zero rows affected means a
// concurrent dispatch took the driver first.
func (r *TxRepo) ClaimDriver(ctx context.Context, driverID string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE driver_locations
        SET is_available = FALSE, updated_at = now()
        WHERE driver_id = $1 AND is_available = TRUE
    `, driverID)
	if err != nil {
		return false, fmt.Errorf("claim driver %q: %w", driverID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseDriver - marks a driver available again.
func (r *TxRepo) ReleaseDriver(ctx context.Context, driverID string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE driver_locations
        SET is_available = TRUE, updated_at = now()
        WHERE driver_id = $1
    `, driverID)
	if err != nil {
		return fmt.Errorf("release driver %q: %w", driverID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("driver %q not found", driverID)
	}
	return nil
}

// InsertDelivery - insert a new delivery.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (order_id, driver_id, shop_lat, shop_lon, dest_lat, dest_lon, driver_lat, driver_lon, is_delivered, assigned_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9)
        RETURNING id
    `, d.OrderID, d.DriverID, d.Shop.Lat, d.Shop.Lon, d.Dest.Lat, d.Dest.Lon,
		d.DriverPos.Lat, d.DriverPos.Lon, d.AssignedAt).Scan(&d.ID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetDeliveryByDriver - get the active delivery for a driver, nil if none.
func (r *TxRepo) GetDeliveryByDriver(ctx context.Context, driverID string) (*domain.Delivery, error) {
	return scanDelivery(r.tx.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE driver_id=$1`, driverID),
		fmt.Sprintf("get delivery by driver %q", driverID))
}

// GetDeliveryByOrder - get the active delivery for an order, nil if none.
func (r *TxRepo) GetDeliveryByOrder(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return scanDelivery(r.tx.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE order_id=$1`, orderID),
		fmt.Sprintf("get delivery by order %q", orderID))
}

// UpdateDriverPosition mirrors a location ping into the active
// delivery's driver position fields. No-op when the driver has no
// active delivery.
func (r *TxRepo) UpdateDriverPosition(ctx context.Context, driverID string, pos domain.Point) error {
	_, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET driver_lat = $2, driver_lon = $3
        WHERE driver_id = $1
    `, driverID, pos.Lat, pos.Lon)
	if err != nil {
		return fmt.Errorf("update delivery driver position %q: %w", driverID, err)
	}
	return nil
}

// DeleteDeliveryByOrder - delete the delivery for an order.
func (r *TxRepo) DeleteDeliveryByOrder(ctx context.Context, orderID string) error {
	ct, err := r.tx.Exec(ctx, `DELETE FROM deliveries WHERE order_id=$1`, orderID)
	if err != nil {
		return fmt.Errorf("delete delivery by order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery for order %q not found", orderID)
	}
	return nil
}

// GetDriver - returns a driver registry row by its ID, nil if none.
func (r *TxRepo) GetDriver(ctx context.Context, driverID string) (*domain.DriverLocation, error) {
	var d domain.DriverLocation
	err := r.tx.QueryRow(ctx,
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

// UpsertDriverLocation - registry upsert inside a transaction; same
// semantics as DriverRepo.Upsert.
func (r *TxRepo) UpsertDriverLocation(ctx context.Context, ping domain.LocationPing) error {
	_, err := r.tx.Exec(ctx, `
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

// InsertCompleted - append a completed delivery to the archive.
func (r *TxRepo) InsertCompleted(ctx context.Context, cd *domain.CompletedDelivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO completed_deliveries (order_id, driver_id, dest_lat, dest_lon, is_delivered, completed_at)
        VALUES ($1, $2, $3, $4, TRUE, $5)
        RETURNING id
    `, cd.OrderID, cd.DriverID, cd.Dest.Lat, cd.Dest.Lon, cd.CompletedAt).Scan(&cd.ID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert completed delivery: %w", err)
	}
	return nil
}

// CompletedExistsByOrder - existence check guarding duplicate archiving.
func (r *TxRepo) CompletedExistsByOrder(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM completed_deliveries WHERE order_id=$1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("completed exists by order %q: %w", orderID, err)
	}
	return exists, nil
}

func scanDelivery(row pgx.Row, op string) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverID,
		&d.Shop.Lat, &d.Shop.Lon, &d.Dest.Lat, &d.Dest.Lon,
		&d.DriverPos.Lat, &d.DriverPos.Lon, &d.Delivered, &d.AssignedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}
