package dispatchtx

import (
	"context"

	"service-dispatch/internal/domain"
)

// Repository is the set of dispatch operations available inside a transaction.
type Repository interface {
	// ListAvailableDrivers returns approved drivers currently marked
	// available, in registration order.
	ListAvailableDrivers(ctx context.Context) ([]domain.DriverLocation, error)
	// ClaimDriver conditionally flips a driver to unavailable. It
	// returns false when the driver was already taken.
	ClaimDriver(ctx context.Context, driverID string) (bool, error)
	ReleaseDriver(ctx context.Context, driverID string) error
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDeliveryByDriver(ctx context.Context, driverID string) (*domain.Delivery, error)
	GetDeliveryByOrder(ctx context.Context, orderID string) (*domain.Delivery, error)
	UpdateDriverPosition(ctx context.Context, driverID string, pos domain.Point) error
	DeleteDeliveryByOrder(ctx context.Context, orderID string) error
	GetDriver(ctx context.Context, driverID string) (*domain.DriverLocation, error)
	UpsertDriverLocation(ctx context.Context, ping domain.LocationPing) error
	InsertCompleted(ctx context.Context, cd *domain.CompletedDelivery) error
	CompletedExistsByOrder(ctx context.Context, orderID string) (bool, error)
}

// Runner is a transaction runner.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
