package cmd

import (
	"log/slog"

	httpadapter "bakery/internal/adapters/in/http"
	"bakery/internal/adapters/out/postgres"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the process wide dependencies and builds every handler,
// job and the HTTP router from them. Nothing outside cmd constructs adapters.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
}

// CreateResolvePricesQueryHandler reads the catalog outside of any transaction.
func (c *CompositionRoot) CreateResolvePricesQueryHandler() queries.ResolvePricesQueryHandler {
	return queries.NewResolvePricesQueryHandler(c.uowFactory.Create().CatalogRepository())
}

func (c *CompositionRoot) CreateGetWorkQueueQueryHandler() queries.GetWorkQueueQueryHandler {
	return queries.NewGetWorkQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleClaimsQueryHandler() queries.GetStaleClaimsQueryHandler {
	return queries.NewGetStaleClaimsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStaleClaimsQueryHandler(),
		c.config.StaleClaimAfter,
		c.config.StaleClaimSchedule,
		c.logger,
	)
}

// CreateHTTPRouter builds the echo instance with every API route.
func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		ResolvePrices:  c.CreateResolvePricesQueryHandler(),
		PlaceOrder:     c.CreatePlaceOrderCommandHandler(),
		ClaimOrder:     c.CreateClaimOrderCommandHandler(),
		AdvanceOrder:   c.CreateAdvanceOrderCommandHandler(),
		CancelOrder:    c.CreateCancelOrderCommandHandler(),
		ConfirmPayment: c.CreateConfirmPaymentCommandHandler(),
		WorkQueue:      c.CreateGetWorkQueueQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(httpadapter.Config{
		Server:        server,
		Staff:         c.uowFactory.Create().StaffRepository(),
		VerifierToken: c.config.VerifierToken,
		Logger:        c.logger,
	})
}

// FuncOrderUoWFactory and FuncPlacementUoWFactory narrow the postgres unit of
// work to the interfaces individual command handlers depend on.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}
