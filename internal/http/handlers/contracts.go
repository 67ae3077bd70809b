package handlers

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/driver"
)

type driverUsecase interface {
	List(ctx context.Context) ([]domain.DriverLocation, error)
	ListByStatus(ctx context.Context, raw string) ([]domain.DriverLocation, error)
	SetStatus(ctx context.Context, driverID, raw string) error
	Delete(ctx context.Context, driverID string) error
}

// NewDriverUsecase wires a driver registry Service into a driverUsecase.
func NewDriverUsecase(s *driver.Service) driverUsecase {
	return s
}

type deliveryUsecase interface {
	CreateDelivery(ctx context.Context, orderID string, shop, dest domain.Point) (domain.DispatchResult, error)
	UpdateLocation(ctx context.Context, ping domain.LocationPing) error
	GetByDriver(ctx context.Context, driverID string) (*domain.Delivery, error)
	GetTrackingInfo(ctx context.Context, orderID string) (domain.TrackingInfo, error)
	MarkDelivered(ctx context.Context, driverID string) (domain.CompletedDelivery, error)
	ListCompletedByDriver(ctx context.Context, driverID string) ([]domain.CompletedDelivery, error)
	DeleteCompletedByOrder(ctx context.Context, orderID string) error
}

// NewDeliveryUsecase wires a dispatch Service into a deliveryUsecase.
func NewDeliveryUsecase(s *dispatch.Service) deliveryUsecase {
	return s
}
