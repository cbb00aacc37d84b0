package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "notpickedup/internal/adapters/in/http"
	"notpickedup/internal/adapters/out/cache"
	"notpickedup/internal/adapters/out/mailer"
	"notpickedup/internal/adapters/out/postgres"
	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/core/ports"
	"notpickedup/internal/jobs"
	"notpickedup/internal/plugin/hook"
	"notpickedup/internal/plugin/host"
	"notpickedup/internal/plugin/notpickedup"
	"notpickedup/internal/support/i18n"
	"notpickedup/internal/support/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	hooks       *hook.Registry
	host        *host.Host
	statuses    *status.Registry
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	statusCache *cache.StatusCountCache
	uowFactory  *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the host runtime and installs the extension. The
// init action has run by the time it returns.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		hooks:    hook.NewRegistry(),
		statuses: status.NewRegistry(),
		registry: registry,
		metrics:  metrics.New(registry),
	}
	c.host = host.New(c.hooks)
	c.statusCache = cache.NewStatusCountCache(c.CreateGetStatusCountsQueryHandler(), config.StatusCountsTTL)

	publisher := eventPublishers{
		mailer.NewPublisher(c.host, mailer.NewLogNotifier(logger), logger),
		c.statusCache,
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	catalog, err := i18n.NewCatalog()
	if err != nil {
		return nil, err
	}
	extension, err := notpickedup.New(
		c.statuses,
		c.CreateMarkOrdersCommandHandler(),
		catalog,
		config.Locale,
		c.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create extension: %w", err)
	}
	extension.Install(c.hooks)

	if err = c.host.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run init hooks: %w", err)
	}

	return c, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.statusCache)
}

func (c *CompositionRoot) CreateMarkOrdersCommandHandler() commands.MarkOrdersCommandHandler {
	return commands.NewMarkOrdersCommandHandler(c.orderUoWFactory(), c.host, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusCountsQueryHandler() queries.GetStatusCountsQueryHandler {
	return queries.NewGetStatusCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusesQueryHandler() queries.GetOrderStatusesQueryHandler {
	return queries.NewGetOrderStatusesQueryHandler(c.host, c.statusCache, c.statuses)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.statusCache, c.config.StatusCountsSchedule, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpadapter.NewServer(
		c.host,
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderStatusesQueryHandler(),
	)
	return httpadapter.NewRouter(server, c.metrics, c.registry, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// eventPublishers hands committed events to every publisher and joins their errors.
type eventPublishers []ports.EventPublisher

func (p eventPublishers) Publish(ctx context.Context, events []order.StatusChanged) error {
	var errList []error
	for _, publisher := range p {
		if err := publisher.Publish(ctx, events); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
