package commands_test

import (
	"context"
	"testing"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ApplyStateChange(ctx context.Context, change order.StateChange, at time.Time) (bool, error) {
	args := m.Called(ctx, change, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) AddProduct(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetProducts(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*catalog.Product)
	return products, args.Error(1)
}

func (m *MockCatalogRepository) GetOverrides(
	ctx context.Context, customerID kernel.UUID, productIDs []kernel.UUID,
) ([]*catalog.PriceOverride, error) {
	args := m.Called(ctx, customerID, productIDs)
	overrides, _ := args.Get(0).([]*catalog.PriceOverride)
	return overrides, args.Error(1)
}

func (m *MockCatalogRepository) SetOverride(ctx context.Context, o *catalog.PriceOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPlacementUoW struct{ MockOrderUoW }

func (m *MockPlacementUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

func identity(t *testing.T, role staff.Role) staff.Identity {
	t.Helper()
	id, err := staff.NewIdentity(kernel.NewUUID(), role)
	require.NoError(t, err)
	return id
}

func storedOrder(t *testing.T, id kernel.UUID, state order.FulfillmentState, owner *kernel.UUID) *order.Order {
	t.Helper()
	price, err := kernel.NewPositiveMoney(450)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 2, price)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		CustomerID:        kernel.NewUUID(),
		DeliveryAddressID: kernel.NewUUID(),
		Lines:             []*order.Line{line},
		TotalPrice:        line.Total(),
		FulfillmentState:  state,
		PaymentState:      order.Paid,
		OwnerID:           owner,
		PreparedByID:      owner,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	})
	require.NoError(t, err)
	return o
}
