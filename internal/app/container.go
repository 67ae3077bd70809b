package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/driver"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the kafka worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the kafka worker container.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	named := []struct {
		name     string
		provider any
	}{
		{"rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal},
		{"gateway_retries_total", metrics.NewGatewayRetriesTotal},
		{"dispatch_assigned_total", metrics.NewDispatchAssignedTotal},
		{"deliveries_completed_total", metrics.NewDeliveriesCompletedTotal},
	}
	for _, n := range named {
		if err := container.Provide(n.provider, dig.Name(n.name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", n.name, err)
		}
	}

	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		config.Load,
		NewLogger,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type dispatchServiceIn struct {
	dig.In
	Repo      *repository.DeliveryRepo
	Estimator dispatch.FixedOffsetEstimator
	Cfg       *config.Config
	Logger    logx.Logger
	Assigned  prometheus.Counter `name:"dispatch_assigned_total"`
	Completed prometheus.Counter `name:"deliveries_completed_total"`
}

func newDispatchService(in dispatchServiceIn) *dispatch.Service {
	return dispatch.NewService(
		in.Repo,
		in.Estimator,
		in.Cfg.Dispatch.ClaimAttempts,
		in.Cfg.Dispatch.OperationTimeout,
		in.Logger,
		dispatch.WithCounters(in.Assigned, in.Completed),
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDriverRepo,
		repository.NewDeliveryRepo,
		func(cfg *config.Config) dispatch.FixedOffsetEstimator {
			return dispatch.NewFixedOffsetEstimator(cfg.Dispatch.ETAOffset)
		},
		func(repo *repository.DriverRepo, cfg *config.Config) *driver.Service {
			return driver.NewService(repo, cfg.Dispatch.OperationTimeout)
		},
		newDispatchService,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		router.New,
		serverProvider,
	)
}
