package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	httpapi "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/orderapi"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger zerolog.Logger
	gormDB *gorm.DB

	store      ports.OrderStore
	sink       ports.CommandSink
	uowFactory *postgres.GormUnitOfWorkFactory

	workflow ports.RejectionWorkflowStore
	inFlight ports.InFlightRegistry
	purgers  []jobs.NamedPurger

	registry *prometheus.Registry
	observer *metrics.TransitionMetrics

	healthChecks []func(ctx context.Context) error
	closers      []io.Closer
}

// NewCompositionRoot wires the adapters selected by cfg. gormDB is only used
// by the postgres store backend and may be nil otherwise.
func NewCompositionRoot(ctx context.Context, cfg Config, log zerolog.Logger, gormDB *gorm.DB) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   log,
		gormDB:   gormDB,
		registry: prometheus.NewRegistry(),
	}

	if err := c.registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	observer, err := metrics.NewTransitionMetrics(c.registry)
	if err != nil {
		return nil, err
	}
	c.observer = observer

	if err = c.wireCoordination(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.wireStore(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) wireCoordination(ctx context.Context) error {
	switch c.cfg.CoordinationBackend {
	case CoordinationRedis:
		client, err := redis.NewClient(ctx, c.cfg.RedisAddr)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client)
		c.healthChecks = append(c.healthChecks, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		c.inFlight = redis.NewInFlightRegistry(client, c.cfg.InFlightTTL)
		c.workflow = redis.NewRejectionWorkflowStore(client, c.cfg.PendingRejectionTTL)
	case CoordinationMemory:
		inFlight := memory.NewInFlightRegistry(c.cfg.InFlightTTL)
		workflow := memory.NewRejectionWorkflowStore(c.cfg.PendingRejectionTTL)
		c.inFlight = inFlight
		c.workflow = workflow
		c.purgers = []jobs.NamedPurger{
			{Name: "in_flight", Purger: inFlight},
			{Name: "pending_rejections", Purger: workflow},
		}
	default:
		return fmt.Errorf("unknown coordination backend %q", c.cfg.CoordinationBackend)
	}
	return nil
}

func (c *CompositionRoot) wireStore() error {
	switch c.cfg.StoreBackend {
	case StoreBackendPostgres:
		if c.gormDB == nil {
			return errors.New("postgres store backend needs a database connection")
		}

		// A nil interface, not a nil *kafka.EventPublisher, disables publishing.
		var publisher ports.EventPublisher
		if len(c.cfg.KafkaBrokers) > 0 {
			writer := kafka.NewWriter(c.cfg.KafkaBrokers, c.cfg.KafkaTopic)
			kafkaPublisher := kafka.NewEventPublisher(writer)
			c.closers = append(c.closers, kafkaPublisher)
			publisher = kafkaPublisher
		}

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(c.gormDB, publisher, logger.Component(c.logger, "unit_of_work"))
		c.store = postgres.NewOrderStore(c.gormDB)
		c.sink = commands.NewTransactionalCommandSink(c.orderUoWFactory())
		c.healthChecks = append(c.healthChecks, func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	case StoreBackendAPI:
		client := orderapi.NewClient(c.cfg.OrderAPIBaseURL, c.cfg.OrderAPITimeout)
		c.store = client
		c.sink = client
	default:
		return fmt.Errorf("unknown store backend %q", c.cfg.StoreBackend)
	}
	return nil
}

// OwnsOrders reports whether the back-office use cases are available.
func (c *CompositionRoot) OwnsOrders() bool {
	return c.uowFactory != nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) transitionDeps() commands.TransitionDeps {
	return commands.TransitionDeps{
		Store:     c.store,
		Sink:      c.sink,
		Workflow:  c.workflow,
		InFlight:  c.inFlight,
		Validator: services.NewTransitionValidator(logger.Component(c.logger, "transition_validator")),
		Observer:  c.observer,
		Logger:    logger.Component(c.logger, "transition_engine"),
	}
}

func (c *CompositionRoot) CreateChangeItemStatusCommandHandler() commands.ChangeItemStatusCommandHandler {
	return commands.NewChangeItemStatusCommandHandler(c.transitionDeps())
}

func (c *CompositionRoot) CreateChangeItemStatusesCommandHandler() commands.ChangeItemStatusesCommandHandler {
	return commands.NewChangeItemStatusesCommandHandler(c.transitionDeps(), c.cfg.BulkConcurrency)
}

func (c *CompositionRoot) CreateSelectRejectionReasonCommandHandler() commands.SelectRejectionReasonCommandHandler {
	return commands.NewSelectRejectionReasonCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreateConfirmRejectionCommandHandler() commands.ConfirmRejectionCommandHandler {
	return commands.NewConfirmRejectionCommandHandler(c.transitionDeps())
}

func (c *CompositionRoot) CreateCancelRejectionCommandHandler() commands.CancelRejectionCommandHandler {
	return commands.NewCancelRejectionCommandHandler(c.workflow)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitCustomerRequestCommandHandler() commands.SubmitCustomerRequestCommandHandler {
	return commands.NewSubmitCustomerRequestCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectCustomerRequestCommandHandler() commands.RejectCustomerRequestCommandHandler {
	return commands.NewRejectCustomerRequestCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(c.store, c.workflow)
}

func (c *CompositionRoot) CreateGetItemHistoryQueryHandler() queries.GetItemHistoryQueryHandler {
	return queries.NewGetItemHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

// Handlers collects the use cases for the HTTP server. Back-office handlers
// stay nil unless the service owns the orders.
func (c *CompositionRoot) Handlers() httpapi.Handlers {
	h := httpapi.Handlers{
		ChangeItemStatus:      c.CreateChangeItemStatusCommandHandler(),
		ChangeItemStatuses:    c.CreateChangeItemStatusesCommandHandler(),
		SelectRejectionReason: c.CreateSelectRejectionReasonCommandHandler(),
		ConfirmRejection:      c.CreateConfirmRejectionCommandHandler(),
		CancelRejection:       c.CreateCancelRejectionCommandHandler(),
		GetOrderFulfillment:   c.CreateGetOrderFulfillmentQueryHandler(),
	}

	if c.OwnsOrders() {
		h.PlaceOrder = c.CreatePlaceOrderCommandHandler()
		h.SubmitCustomerRequest = c.CreateSubmitCustomerRequestCommandHandler()
		h.RejectCustomerRequest = c.CreateRejectCustomerRequestCommandHandler()
		h.GetItemHistory = c.CreateGetItemHistoryQueryHandler()
		h.GetOpenOrders = c.CreateGetOpenOrdersQueryHandler()
	}

	return h
}

func (c *CompositionRoot) Router() *echo.Echo {
	return httpapi.NewRouter(httpapi.NewServer(c.Handlers()), httpapi.RouterConfig{
		Logger:       logger.Component(c.logger, "http"),
		RateLimitRPS: c.cfg.RateLimitRPS,
		Gatherer:     c.registry,
		HealthCheck:  c.HealthCheck,
	})
}

// HealthCheck pings every external dependency the root connected to.
func (c *CompositionRoot) HealthCheck(ctx context.Context) error {
	for _, check := range c.healthChecks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Jobs returns the background jobs for the selected backends. Only the
// in-memory coordination stores need a janitor; redis expires keys itself.
func (c *CompositionRoot) Jobs() ([]jobs.Job, error) {
	if len(c.purgers) == 0 {
		return nil, nil
	}

	janitor, err := jobs.NewWorkflowJanitorJob(c.cfg.JanitorSchedule, logger.Component(c.logger, "janitor"), c.purgers...)
	if err != nil {
		return nil, err
	}
	return []jobs.Job{janitor}, nil
}

// Close releases the connections opened by the root, last opened first.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
