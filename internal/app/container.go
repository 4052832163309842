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

	"freight-broker-service/internal/config"
	"freight-broker-service/internal/gateway/addresses"
	"freight-broker-service/internal/http/handlers"
	"freight-broker-service/internal/http/middleware/ratelimit"
	"freight-broker-service/internal/http/router"
	"freight-broker-service/internal/logx"
	"freight-broker-service/internal/metrics"
	"freight-broker-service/internal/ports/brokertx"
	"freight-broker-service/internal/repository"
	"freight-broker-service/internal/service/assignment"
	"freight-broker-service/internal/service/load"
	"freight-broker-service/internal/service/truck"
)

// rematchInterval is the period of the worker's POSTED re-match sweep.
type rematchInterval time.Duration

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
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

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
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
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func(cfg *config.Config) rematchInterval {
			return rematchInterval(cfg.Broker.RematchInterval)
		},
	)
}

type metricsOut struct {
	dig.Out

	Assigned       prometheus.Counter `name:"assignments_total"`
	NoDriver       prometheus.Counter `name:"assignment_no_driver_total"`
	RateLimit      prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetries prometheus.Counter `name:"gateway_retries_total"`
}

func newMetrics() metricsOut {
	out := metricsOut{
		Assigned:       metrics.NewAssignmentsTotal(),
		NoDriver:       metrics.NewAssignmentNoDriverTotal(),
		RateLimit:      metrics.NewRateLimitExceededTotal(),
		GatewayRetries: metrics.NewGatewayRetriesTotal(),
	}
	prometheus.MustRegister(out.Assigned, out.NoDriver, out.RateLimit, out.GatewayRetries)
	return out
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newMetrics)
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

type addressSourceIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newAddressSource wires the shipper address profile source: the remote
// gateway behind a retry decorator when configured, fixed depot
// addresses otherwise.
func newAddressSource(in addressSourceIn) load.AddressSource {
	gwCfg := in.Cfg.AddressGateway
	gw := addresses.NewHTTPGateway(&http.Client{Timeout: gwCfg.Timeout}, gwCfg.BaseURL)
	if gw == nil {
		return addresses.NewStaticGateway()
	}
	return addresses.NewRetryingGateway(gw, in.Logger, in.Retries, addresses.RetryConfig{
		MaxAttempts: gwCfg.MaxAttempts,
		BaseDelay:   gwCfg.BaseDelay,
		MaxDelay:    gwCfg.MaxDelay,
	})
}

type coordinatorIn struct {
	dig.In

	Loads    *repository.LoadRepo
	Trucks   *repository.TruckRepo
	Tx       brokertx.Runner
	Cfg      *config.Config
	Logger   logx.Logger
	Assigned prometheus.Counter `name:"assignments_total"`
	NoDriver prometheus.Counter `name:"assignment_no_driver_total"`
}

func newCoordinator(in coordinatorIn) *assignment.Coordinator {
	return assignment.NewCoordinator(
		in.Loads, in.Trucks, in.Tx,
		in.Cfg.Broker.OperationTimeout,
		in.Logger,
		in.Assigned, in.NoDriver,
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewLoadRepo,
		repository.NewTruckRepo,
		func(db *pgxpool.Pool) brokertx.Runner { return repository.NewBrokerRepo(db) },
		newAddressSource,
		func(repo *repository.LoadRepo, tx brokertx.Runner, src load.AddressSource, cfg *config.Config, logger logx.Logger) *load.Service {
			return load.NewService(repo, tx, src, cfg.Broker.OperationTimeout, logger)
		},
		newCoordinator,
		func(repo *repository.TruckRepo, tx brokertx.Runner, cfg *config.Config, logger logx.Logger) *truck.Service {
			return truck.NewService(repo, tx, cfg.Broker.OperationTimeout, logger)
		},
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
	routerProvider := func(
		h *handlers.Handlers,
		loads *handlers.LoadHandler,
		trucks *handlers.TruckHandler,
		rl *ratelimit.Middleware,
		logger logx.Logger,
	) http.Handler {
		return router.New(h, loads, trucks, rl, logger)
	}
	return provideAll(container,
		handlers.New,
		handlers.NewLoadUsecase,
		handlers.NewAssignerUsecase,
		handlers.NewTruckUsecase,
		handlers.NewLoadHandler,
		handlers.NewTruckHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}
