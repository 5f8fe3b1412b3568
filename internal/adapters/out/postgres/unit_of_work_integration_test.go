package postgres_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "bakery/internal/adapters/out/postgres"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type placementFactory func() commands.PlacementUoW

func (f placementFactory) Create() commands.PlacementUoW { return f() }

type orderFactory func() commands.OrderUoW

func (f orderFactory) Create() commands.OrderUoW { return f() }

// UnitOfWorkIntegrationTestSuite exercises transactions and the command handlers
// end to end against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, products, price_overrides, staff_members").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) placementHandler() commands.PlaceOrderCommandHandler {
	f := placementFactory(func() commands.PlacementUoW { return suite.factory.Create() })
	return commands.NewPlaceOrderCommandHandler(f, slog.New(slog.DiscardHandler))
}

func (suite *UnitOfWorkIntegrationTestSuite) claimHandler() commands.ClaimOrderCommandHandler {
	f := orderFactory(func() commands.OrderUoW { return suite.factory.Create() })
	return commands.NewClaimOrderCommandHandler(f)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(name string, price int64) *catalog.Product {
	m, err := kernel.NewPositiveMoney(price)
	suite.Require().NoError(err)
	p, err := catalog.NewProduct(kernel.NewUUID(), name, "pastry", m, "pcs")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CatalogRepository().AddProduct(context.Background(), p))
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) countRows(model any) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWritesAndTracking() {
	ctx := context.Background()
	uow := suite.factory.CreateGorm()
	member, err := staff.NewMember(kernel.NewUUID(), "Clara", staff.Manager)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.StaffRepository().Add(ctx, member))
	suite.Require().Len(uow.TrackedAggregates(), 1)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.TrackedAggregates())
	_, err = suite.factory.Create().StaffRepository().Get(ctx, member.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_FreezesResolvedPrices() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	croissant := suite.seedProduct("Croissant", 300)

	overridePrice, err := kernel.NewPositiveMoney(280)
	suite.Require().NoError(err)
	o, err := catalog.NewPriceOverride(customerID, croissant.ID(), overridePrice)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CatalogRepository().SetOverride(ctx, o))

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, kernel.NewUUID(),
		[]services.CartItem{{ProductID: croissant.ID(), Quantity: 12}}, nil)
	suite.Require().NoError(err)

	result, err := suite.placementHandler().Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(int64(3360), result.TotalPrice.Minor())

	// Catalog changes after placement never reach the stored snapshot.
	suite.Require().NoError(suite.db.Exec("UPDATE products SET base_price_minor = 999").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM price_overrides").Error)

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, result.OrderID)
	suite.Require().NoError(err)
	suite.Equal(int64(280), stored.Lines()[0].UnitPrice().Minor())
	suite.Equal(int64(3360), stored.TotalPrice().Minor())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_UnknownProductIsAtomic() {
	ctx := context.Background()
	known := suite.seedProduct("Baguette", 450)
	missing := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]services.CartItem{{ProductID: known.ID(), Quantity: 2}, {ProductID: missing, Quantity: 1}}, nil)
	suite.Require().NoError(err)

	_, err = suite.placementHandler().Handle(ctx, cmd)

	var unknown *catalog.UnknownProductError
	suite.Require().True(errors.As(err, &unknown))
	suite.True(unknown.ProductID.IsEqual(missing))
	suite.Zero(suite.countRows(&orderrepo.OrderDTO{}))
	suite.Zero(suite.countRows(&orderrepo.OrderLineDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestClaim_ConcurrentCallersGetOneSuccessRestConflict() {
	ctx := context.Background()
	bun := suite.seedProduct("Cinnamon bun", 250)
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]services.CartItem{{ProductID: bun.ID(), Quantity: 6}}, nil)
	suite.Require().NoError(err)
	placed, err := suite.placementHandler().Handle(ctx, cmd)
	suite.Require().NoError(err)

	const bakers = 6
	results := make([]error, bakers)
	var g errgroup.Group
	for i := range bakers {
		g.Go(func() error {
			id, idErr := staff.NewIdentity(kernel.NewUUID(), staff.Baker)
			if idErr != nil {
				return idErr
			}
			claim, claimErr := commands.NewClaimOrderCommand(placed.OrderID, id, order.Pending, order.Preparing)
			if claimErr != nil {
				return claimErr
			}
			_, results[i] = suite.claimHandler().Handle(ctx, claim)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	succeeded, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		default:
			suite.Failf("unexpected claim error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(bakers-1, conflicts)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
