package orders

import (
	"context"
	"errors"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Processor maps order and driver events onto dispatch operations.
type Processor struct {
	dispatch DispatchPort
	registry RegistryPort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new orders Processor.
func NewProcessor(dispatch DispatchPort, registry RegistryPort, logger logx.Logger) *Processor {
	p := &Processor{
		dispatch: dispatch,
		registry: registry,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onCreated, p.onCompleted)
	return p
}

// Handle processes a single order event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

// HandleDriverRegistered processes a driver-registration event.
func (p *Processor) HandleDriverRegistered(ctx context.Context, e DriverEvent) error {
	return p.registry.RegisterDriver(ctx, e.DriverID, e.Name, e.UserID)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	_, err := p.dispatch.CreateDelivery(ctx, e.OrderID,
		domain.Point{Lat: e.ShopLat, Lon: e.ShopLon},
		domain.Point{Lat: e.DestLat, Lon: e.DestLon},
	)
	switch {
	case errors.Is(err, apperr.ErrNoDriversAvailable):
		// the order service re-emits until a driver frees up
		p.logger.Warn("no drivers available, skipping order",
			logx.String("order_id", e.OrderID))
		return nil
	case errors.Is(err, apperr.ErrConflict):
		// already dispatched or every candidate raced away
		return nil
	}
	return err
}

func (p *Processor) onCompleted(ctx context.Context, e Event) error {
	_, err := p.dispatch.CompleteByOrder(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrNoActiveDelivery) {
		return nil
	}
	return err
}
