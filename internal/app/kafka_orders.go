package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	order "service-dispatch/internal/gateway/orders"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/driver"
	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/transport/kafka"
)

type orderHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

type orderFetcher interface {
	GetByID(ctx context.Context, id string) (*order.Order, error)
}

// makeOrderHandler binds order events to the processor. When the orders
// gateway is configured, the event is re-read from the order service
// first so stale statuses and coordinates in the event payload do not
// drive dispatch.
func makeOrderHandler(h orderHandler, gw orderFetcher) kafka.OrderHandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		if gw == nil {
			return h.Handle(ctx, event)
		}

		gwCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		ord, err := gw.GetByID(gwCtx, event.OrderID)
		if err != nil {
			return err
		}
		if ord == nil {
			// order no longer exists; nothing to dispatch
			return nil
		}

		event.Status = ord.Status
		event.ShopLat, event.ShopLon = ord.ShopLat, ord.ShopLon
		event.DestLat, event.DestLon = ord.DestLat, ord.DestLon
		event.CreatedAt = ord.CreatedAt
		return h.Handle(ctx, event)
	}
}

func makeDriverHandler(p *orders.Processor) kafka.DriverHandleFunc {
	return p.HandleDriverRegistered
}

type ordersGatewayIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newOrdersGateway(in ordersGatewayIn) *order.RetryingGateway {
	gw := in.Cfg.OrdersGateway
	inner := order.NewHTTPGateway(gw.BaseURL, nil)
	return order.NewRetryingGateway(inner, in.Logger, in.Retries, order.RetryConfig{
		MaxAttempts: gw.MaxAttempts,
		BaseDelay:   gw.BaseDelay,
		MaxDelay:    gw.MaxDelay,
	})
}

func newConsumer(cfg *config.Config, logger logx.Logger, onOrder kafka.OrderHandleFunc, onDriver kafka.DriverHandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(
		logger,
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.OrdersTopic,
		cfg.Kafka.DriversTopic,
		onOrder,
		onDriver,
	)
}

func registerWorker(container *dig.Container) error {
	err := provideAll(container,
		func(s *dispatch.Service) orders.DispatchPort { return s },
		func(s *driver.Service) orders.RegistryPort { return s },
		orders.NewProcessor,
		newOrdersGateway,
		func(p *orders.Processor, gw *order.RetryingGateway) kafka.OrderHandleFunc {
			if gw == nil {
				return makeOrderHandler(p, nil)
			}
			return makeOrderHandler(p, gw)
		},
		makeDriverHandler,
		newConsumer,
	)
	if err != nil {
		return fmt.Errorf("worker providers: %w", err)
	}
	return nil
}
