//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-dispatch/internal/domain"
)

// DispatchPort abstracts the subset of dispatch operations needed by
// the Processor when handling order events.
type DispatchPort interface {
	CreateDelivery(ctx context.Context, orderID string, shop, dest domain.Point) (domain.DispatchResult, error)
	CompleteByOrder(ctx context.Context, orderID string) (domain.CompletedDelivery, error)
}

// RegistryPort abstracts the driver registry operation needed for
// driver-registration events.
type RegistryPort interface {
	RegisterDriver(ctx context.Context, driverID string, name, userID *string) error
}
