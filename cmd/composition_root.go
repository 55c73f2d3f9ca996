package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpin "dinein/internal/adapters/in/http"
	"dinein/internal/adapters/out/catalog"
	"dinein/internal/adapters/out/postgres"
	"dinein/internal/adapters/out/redis/ordercache"
	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/application/usecases/queries"
	"dinein/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	orderCache   *ordercache.RedisOrderCache
	menuCatalog  *catalog.InMemoryMenuCatalog
	taxRates     *catalog.StaticTaxRateSource
	sweepEnabled bool
	logger       *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	ttlHours, _ := strconv.Atoi(configs.OrderCacheTTLHours)

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderCache:   ordercache.NewRedisOrderCache(redisClient, time.Duration(ttlHours)*time.Hour),
		menuCatalog:  catalog.NewInMemoryMenuCatalog(),
		taxRates:     catalog.NewStaticTaxRateSource(nil),
		sweepEnabled: configs.SweepDisabled != "true",
		logger:       logger,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleaseExpiredReservationsCommandHandler(),
		c.orderCache,
		c.orderUoWFactory(),
		c.sweepEnabled,
		c.logger,
	)
}

// MenuCatalog exposes the catalog so startup code can load menu items.
func (c *CompositionRoot) MenuCatalog() *catalog.InMemoryMenuCatalog {
	return c.menuCatalog
}

func (c *CompositionRoot) CreateReserveTableCommandHandler() commands.ReserveTableCommandHandler {
	return commands.NewReserveTableCommandHandler(c.tableUoWFactory())
}

func (c *CompositionRoot) CreateReleaseTableCommandHandler() commands.ReleaseTableCommandHandler {
	return commands.NewReleaseTableCommandHandler(c.tableUoWFactory())
}

func (c *CompositionRoot) CreateMergeTablesCommandHandler() commands.MergeTablesCommandHandler {
	return commands.NewMergeTablesCommandHandler(c.tableUoWFactory())
}

func (c *CompositionRoot) CreateSplitTablesCommandHandler() commands.SplitTablesCommandHandler {
	return commands.NewSplitTablesCommandHandler(c.tableUoWFactory())
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	return commands.NewReleaseExpiredReservationsCommandHandler(c.tableUoWFactory())
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.tableUoWFactory(), c.orderCache, c.taxRates, c.logger)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.orderCache, c.menuCatalog, c.logger)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreateSetItemQuantityCommandHandler() commands.SetItemQuantityCommandHandler {
	return commands.NewSetItemQuantityCommandHandler(c.orderUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.crossUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreateTransferOrderCommandHandler() commands.TransferOrderCommandHandler {
	return commands.NewTransferOrderCommandHandler(c.transferUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreateSettleOrderCommandHandler() commands.SettleOrderCommandHandler {
	return commands.NewSettleOrderCommandHandler(c.crossUoWFactory(), c.orderCache, c.logger)
}

func (c *CompositionRoot) CreateGetTablesQueryHandler() queries.GetTablesQueryHandler {
	return queries.NewGetTablesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.orderCache, c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetPendingTransfersQueryHandler() queries.GetPendingTransfersQueryHandler {
	return queries.NewGetPendingTransfersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSettledOrdersQueryHandler() queries.GetSettledOrdersQueryHandler {
	return queries.NewGetSettledOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateReserveTableCommandHandler(),
		c.CreateReleaseTableCommandHandler(),
		c.CreateMergeTablesCommandHandler(),
		c.CreateSplitTablesCommandHandler(),
		c.CreateStartOrderCommandHandler(),
		c.CreateAddOrderItemCommandHandler(),
		c.CreateRemoveOrderItemCommandHandler(),
		c.CreateSetItemQuantityCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateTransferOrderCommandHandler(),
		c.CreateSettleOrderCommandHandler(),
		c.CreateGetTablesQueryHandler(),
		c.CreateGetActiveOrderQueryHandler(),
		c.CreateGetPendingTransfersQueryHandler(),
		c.CreateGetSettledOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) tableUoWFactory() commands.TableUoWFactory {
	return FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) transferUoWFactory() commands.TransferUoWFactory {
	return FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
