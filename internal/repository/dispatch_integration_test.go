//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/driver"
)

// DispatchLifecycleSuite drives the whole delivery lifecycle through the
// services against a real database: ping, dispatch, tracking, delivery,
// archive.
type DispatchLifecycleSuite struct {
	suite.Suite
	dispatchSvc *dispatch.Service
	driverSvc   *driver.Service
	driverRepo  *repository.DriverRepo
}

func (s *DispatchLifecycleSuite) SetupSuite() {
	deliveryRepo := repository.NewDeliveryRepo(tcPool)
	s.driverRepo = repository.NewDriverRepo(tcPool)
	s.dispatchSvc = dispatch.NewService(
		deliveryRepo,
		dispatch.NewFixedOffsetEstimator(15*time.Minute),
		3,
		3*time.Second,
		logx.Nop(),
	)
	s.driverSvc = driver.NewService(s.driverRepo, 3*time.Second)
}

func (s *DispatchLifecycleSuite) SetupTest() {
	ctx := context.Background()
	_, err := tcPool.Exec(ctx, `TRUNCATE deliveries, completed_deliveries RESTART IDENTITY`)
	s.Require().NoError(err)
	_, err = tcPool.Exec(ctx, `TRUNCATE driver_locations CASCADE`)
	s.Require().NoError(err)
}

func (s *DispatchLifecycleSuite) approveDriver(id, name string, lat, lon float64) {
	ctx := context.Background()
	s.Require().NoError(s.driverSvc.UpsertLocation(ctx, domain.LocationPing{
		DriverID: id, Name: &name, Latitude: lat, Longitude: lon,
	}))
	s.Require().NoError(s.driverSvc.SetStatus(ctx, id, "approved"))
}

func (s *DispatchLifecycleSuite) TestLifecycle_DispatchToArchive() {
	ctx := context.Background()

	shop := domain.Point{Lat: 6.9271, Lon: 79.8612}
	dest := domain.Point{Lat: 6.9, Lon: 79.85}

	s.approveDriver("near", "Amal", 6.93, 79.86)
	s.approveDriver("far", "Nimal", 7.2906, 80.6337)

	res, err := s.dispatchSvc.CreateDelivery(ctx, "order-1", shop, dest)
	s.Require().NoError(err)
	s.Equal("near", res.DriverID)
	s.Equal("Amal", res.DriverName)
	s.Positive(res.DistanceKm)

	got, err := s.driverRepo.Get(ctx, "near")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.False(got.Available, "dispatched driver leaves the pool")

	// pings mirror into the active delivery
	s.Require().NoError(s.dispatchSvc.UpdateLocation(ctx, domain.LocationPing{
		DriverID: "near", Latitude: 6.91, Longitude: 79.855,
	}))

	active, err := s.dispatchSvc.GetByDriver(ctx, "near")
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal("order-1", active.OrderID)
	s.Equal(6.91, active.DriverPos.Lat)

	info, err := s.dispatchSvc.GetTrackingInfo(ctx, "order-1")
	s.Require().NoError(err)
	s.Equal("Amal", info.DriverName)
	s.False(info.Delivered)
	s.Equal(dest, info.Dest)
	s.False(info.EstimatedArrival.IsZero())

	cd, err := s.dispatchSvc.MarkDelivered(ctx, "near")
	s.Require().NoError(err)
	s.Equal("order-1", cd.OrderID)
	s.True(cd.Delivered)

	got, err = s.driverRepo.Get(ctx, "near")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.True(got.Available, "driver returns to the pool after delivery")

	_, err = s.dispatchSvc.GetByDriver(ctx, "near")
	s.Require().ErrorIs(err, apperr.ErrNoActiveDelivery)

	archived, err := s.dispatchSvc.ListCompletedByDriver(ctx, "near")
	s.Require().NoError(err)
	s.Require().Len(archived, 1)
	s.Equal("order-1", archived[0].OrderID)

	_, err = s.dispatchSvc.MarkDelivered(ctx, "near")
	s.Require().ErrorIs(err, apperr.ErrNoActiveDelivery)
}

func (s *DispatchLifecycleSuite) TestCreateDelivery_DuplicateOrderConflicts() {
	ctx := context.Background()

	shop := domain.Point{Lat: 6.9271, Lon: 79.8612}
	dest := domain.Point{Lat: 6.9, Lon: 79.85}

	s.approveDriver("d-1", "Amal", 6.93, 79.86)
	s.approveDriver("d-2", "Nimal", 6.94, 79.87)

	_, err := s.dispatchSvc.CreateDelivery(ctx, "order-1", shop, dest)
	s.Require().NoError(err)

	_, err = s.dispatchSvc.CreateDelivery(ctx, "order-1", shop, dest)
	s.Require().ErrorIs(err, apperr.ErrConflict)
}

func (s *DispatchLifecycleSuite) TestCreateDelivery_NoDriversAvailable() {
	ctx := context.Background()

	_, err := s.dispatchSvc.CreateDelivery(ctx, "order-1",
		domain.Point{Lat: 6.9271, Lon: 79.8612},
		domain.Point{Lat: 6.9, Lon: 79.85},
	)
	s.Require().ErrorIs(err, apperr.ErrNoDriversAvailable)
}

func (s *DispatchLifecycleSuite) TestCompleteByOrder_ReleasesDriver() {
	ctx := context.Background()

	s.approveDriver("d-1", "Amal", 6.93, 79.86)

	_, err := s.dispatchSvc.CreateDelivery(ctx, "order-1",
		domain.Point{Lat: 6.9271, Lon: 79.8612},
		domain.Point{Lat: 6.9, Lon: 79.85},
	)
	s.Require().NoError(err)

	cd, err := s.dispatchSvc.CompleteByOrder(ctx, "order-1")
	s.Require().NoError(err)
	s.Equal("d-1", cd.DriverID)

	got, err := s.driverRepo.Get(ctx, "d-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.True(got.Available)
}

func TestDispatchLifecycleSuite(t *testing.T) {
	suite.Run(t, new(DispatchLifecycleSuite))
}
