//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

type dispatchRepository interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
	ListCompletedByDriver(ctx context.Context, driverID string) ([]domain.CompletedDelivery, error)
	DeleteCompletedByOrder(ctx context.Context, orderID string) (bool, error)
}

// Estimator produces the estimated arrival time for an active delivery.
// The fixed-offset implementation is a stand-in for a real ETA model.
type Estimator interface {
	EstimatedArrival(now time.Time, from, to domain.Point) time.Time
}
