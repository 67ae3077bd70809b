package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Service - dispatch core: binds orders to the nearest available driver
// and drives the delivery lifecycle through to the archive.
type Service struct {
	repo             dispatchRepository
	estimator        Estimator
	claimAttempts    int
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time

	assigned  prometheus.Counter
	completed prometheus.Counter
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithCounters wires dispatch/completion counters into the service.
func WithCounters(assigned, completed prometheus.Counter) Option {
	return func(s *Service) {
		s.assigned = assigned
		s.completed = completed
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a dispatch Service.
func NewService(r dispatchRepository, est Estimator, claimAttempts int, timeout time.Duration, logger logx.Logger, opts ...Option) *Service {
	if claimAttempts <= 0 {
		claimAttempts = 3
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if est == nil {
		est = NewFixedOffsetEstimator(0)
	}
	s := &Service{
		repo:             r,
		estimator:        est,
		claimAttempts:    claimAttempts,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateOrderID(raw string) (string, error) {
	orderID := strings.TrimSpace(raw)
	if orderID == "" {
		return "", apperr.ErrInvalid
	}
	return orderID, nil
}

// CreateDelivery dispatches an order: it picks the nearest available
// approved driver by haversine distance, claims it and creates the
// delivery, all in one transaction. A claim lost to a concurrent
// dispatch falls through to the next-nearest candidate; when every
// attempted candidate is gone the call fails with ErrConflict.
func (s *Service) CreateDelivery(ctx context.Context, orderID string, shop, dest domain.Point) (domain.DispatchResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.DispatchResult{}, err
	}
	if !domain.ValidCoordinate(shop.Lat, shop.Lon) || !domain.ValidCoordinate(dest.Lat, dest.Lon) {
		return domain.DispatchResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.DispatchResult

	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		existing, err := tx.GetDeliveryByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.ErrConflict
		}

		pool, err := tx.ListAvailableDrivers(ctx)
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return apperr.ErrNoDriversAvailable
		}

		ranked := rankByDistance(pool, shop)
		attempts := s.claimAttempts
		if attempts > len(ranked) {
			attempts = len(ranked)
		}

		for i := 0; i < attempts; i++ {
			cand := ranked[i]

			claimed, err := tx.ClaimDriver(ctx, cand.driver.DriverID)
			if err != nil {
				return err
			}
			if !claimed {
				continue
			}

			d := &domain.Delivery{
				OrderID:    orderID,
				DriverID:   cand.driver.DriverID,
				Shop:       shop,
				Dest:       dest,
				DriverPos:  domain.Point{Lat: cand.driver.Latitude, Lon: cand.driver.Longitude},
				AssignedAt: s.now(),
			}
			if err := tx.InsertDelivery(ctx, d); err != nil {
				return err
			}

			result = domain.DispatchResult{
				OrderID:    orderID,
				DriverID:   cand.driver.DriverID,
				DriverName: cand.driver.Name,
				DistanceKm: cand.distanceKm,
			}
			return nil
		}

		return apperr.ErrConflict
	})
	if err != nil {
		return domain.DispatchResult{}, err
	}

	inc(s.assigned)
	s.logger.Info("delivery dispatched",
		logx.String("event", "delivery_dispatched"),
		logx.String("order_id", result.OrderID),
		logx.String("driver_id", result.DriverID),
		logx.Float64("distance_km", result.DistanceKm),
	)

	return result, nil
}

// UpdateLocation applies a driver location ping: the registry row is
// upserted and, when the driver has an active delivery, its driver
// position fields are mirrored in the same transaction.
func (s *Service) UpdateLocation(ctx context.Context, ping domain.LocationPing) error {
	ping.DriverID = strings.TrimSpace(ping.DriverID)
	if ping.DriverID == "" || !domain.ValidCoordinate(ping.Latitude, ping.Longitude) {
		return apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if err := tx.UpsertDriverLocation(ctx, ping); err != nil {
			return err
		}

		d, err := tx.GetDeliveryByDriver(ctx, ping.DriverID)
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}
		return tx.UpdateDriverPosition(ctx, ping.DriverID, domain.Point{Lat: ping.Latitude, Lon: ping.Longitude})
	})
}

// GetByDriver returns the active delivery for a driver.
func (s *Service) GetByDriver(ctx context.Context, driverID string) (*domain.Delivery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryByDriver(ctx, driverID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNoActiveDelivery
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrackingInfo returns the read-only tracking projection for an
// order with an in-flight delivery.
func (s *Service) GetTrackingInfo(ctx context.Context, orderID string) (domain.TrackingInfo, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.TrackingInfo{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var info domain.TrackingInfo
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNoActiveDelivery
		}

		var name string
		if drv, err := tx.GetDriver(ctx, d.DriverID); err != nil {
			return err
		} else if drv != nil {
			name = drv.Name
		}

		info = domain.TrackingInfo{
			OrderID:          d.OrderID,
			Delivered:        false,
			EstimatedArrival: s.estimator.EstimatedArrival(s.now(), d.DriverPos, d.Dest),
			DriverName:       name,
			DriverPos:        d.DriverPos,
			Dest:             d.Dest,
		}
		return nil
	})
	if err != nil {
		return domain.TrackingInfo{}, err
	}
	return info, nil
}

// MarkDelivered completes the active delivery for a driver: the archive
// row is written (guarded by an existence check, so a concurrent or
// repeated completion never produces two rows), the delivery row is
// removed and the driver released, all in one transaction.
func (s *Service) MarkDelivered(ctx context.Context, driverID string) (domain.CompletedDelivery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return domain.CompletedDelivery{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var archived domain.CompletedDelivery
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryByDriver(ctx, driverID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNoActiveDelivery
		}
		return s.complete(ctx, tx, d, &archived)
	})
	if err != nil {
		return domain.CompletedDelivery{}, err
	}

	inc(s.completed)
	s.logger.Info("delivery completed",
		logx.String("event", "delivery_completed"),
		logx.String("order_id", archived.OrderID),
		logx.String("driver_id", archived.DriverID),
	)

	return archived, nil
}

// CompleteByOrder is the order-event flavour of MarkDelivered, keyed by
// order id instead of driver id.
func (s *Service) CompleteByOrder(ctx context.Context, orderID string) (domain.CompletedDelivery, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.CompletedDelivery{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var archived domain.CompletedDelivery
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNoActiveDelivery
		}
		return s.complete(ctx, tx, d, &archived)
	})
	if err != nil {
		return domain.CompletedDelivery{}, err
	}

	inc(s.completed)
	return archived, nil
}

func (s *Service) complete(ctx context.Context, tx dispatchtx.Repository, d *domain.Delivery, archived *domain.CompletedDelivery) error {
	exists, err := tx.CompletedExistsByOrder(ctx, d.OrderID)
	if err != nil {
		return err
	}

	cd := domain.CompletedDelivery{
		OrderID:     d.OrderID,
		DriverID:    d.DriverID,
		Dest:        d.Dest,
		Delivered:   true,
		CompletedAt: s.now(),
	}
	if !exists {
		if err := tx.InsertCompleted(ctx, &cd); err != nil {
			return err
		}
	}

	if err := tx.DeleteDeliveryByOrder(ctx, d.OrderID); err != nil {
		return err
	}
	if err := tx.ReleaseDriver(ctx, d.DriverID); err != nil {
		return err
	}

	*archived = cd
	return nil
}

// ListCompletedByDriver returns the archived deliveries for a driver.
func (s *Service) ListCompletedByDriver(ctx context.Context, driverID string) ([]domain.CompletedDelivery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListCompletedByDriver(ctx, driverID)
}

// DeleteCompletedByOrder removes an archived delivery for administrative cleanup.
func (s *Service) DeleteCompletedByOrder(ctx context.Context, orderID string) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	deleted, err := s.repo.DeleteCompletedByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
