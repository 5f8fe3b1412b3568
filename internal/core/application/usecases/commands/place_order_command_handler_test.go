package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type placementFixture struct {
	customerID kernel.UUID
	croissant  *catalog.Product
	override   *catalog.PriceOverride
	cmd        commands.PlaceOrderCommand
}

func newPlacementFixture(t *testing.T, clientTotal *kernel.Money) placementFixture {
	t.Helper()
	customerID := kernel.NewUUID()

	basePrice, err := kernel.NewPositiveMoney(300)
	require.NoError(t, err)
	croissant, err := catalog.NewProduct(kernel.NewUUID(), "Croissant", "viennoiserie", basePrice, "pcs")
	require.NoError(t, err)

	overridePrice, err := kernel.NewPositiveMoney(280)
	require.NoError(t, err)
	override, err := catalog.NewPriceOverride(customerID, croissant.ID(), overridePrice)
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, kernel.NewUUID(),
		[]services.CartItem{{ProductID: croissant.ID(), Quantity: 12}}, clientTotal)
	require.NoError(t, err)

	return placementFixture{customerID: customerID, croissant: croissant, override: override, cmd: cmd}
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(t, nil)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		catalogRepo.On("GetProducts", ctx, []kernel.UUID{f.croissant.ID()}).
			Return([]*catalog.Product{f.croissant}, nil).Once(),
		catalogRepo.On("GetOverrides", ctx, f.customerID, []kernel.UUID{f.croissant.ID()}).
			Return([]*catalog.PriceOverride{f.override}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			lines := o.Lines()
			return o.TotalPrice().Minor() == 3360 &&
				len(lines) == 1 &&
				lines[0].UnitPrice().Minor() == 280 &&
				o.FulfillmentState() == order.Pending &&
				o.PaymentState() == order.Unpaid &&
				o.Owner() == nil
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))
	result, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.True(t, result.OrderID.IsEqual(f.cmd.OrderID()))
	assert.Equal(t, int64(3360), result.TotalPrice.Minor())
	catalogRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_UnknownProductWritesNothing(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(t, nil)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		catalogRepo.On("GetProducts", ctx, mock.Anything).Return([]*catalog.Product{}, nil).Once(),
		catalogRepo.On("GetOverrides", ctx, f.customerID, mock.Anything).Return([]*catalog.PriceOverride{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))
	_, err := h.Handle(ctx, f.cmd)

	var unknown *catalog.UnknownProductError
	require.True(t, errors.As(err, &unknown))
	assert.True(t, unknown.ProductID.IsEqual(f.croissant.ID()))
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockPlacementUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))

	_, err := h.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(t, nil)

	uow := new(MockPlacementUoW)
	factory := new(MockPlacementUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "begin error")
}

func TestPlaceOrderCommandHandler_Handle_AddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newPlacementFixture(t, nil)

	catalogRepo := new(MockCatalogRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(catalogRepo).Once(),
		catalogRepo.On("GetProducts", ctx, mock.Anything).Return([]*catalog.Product{f.croissant}, nil).Once(),
		catalogRepo.On("GetOverrides", ctx, f.customerID, mock.Anything).Return([]*catalog.PriceOverride{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_LogsClientTotalMismatch(t *testing.T) {
	ctx := t.Context()
	clientTotal, err := kernel.NewMoney(3600)
	require.NoError(t, err)
	f := newPlacementFixture(t, &clientTotal)

	catalogRepo := new(MockCatalogRepository)
	catalogRepo.On("GetProducts", ctx, mock.Anything).Return([]*catalog.Product{f.croissant}, nil)
	catalogRepo.On("GetOverrides", ctx, f.customerID, mock.Anything).Return([]*catalog.PriceOverride{f.override}, nil)
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", ctx, mock.Anything).Return(nil)

	uow := new(MockPlacementUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("CatalogRepository").Return(catalogRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := commands.NewPlaceOrderCommandHandler(factory, logger)
	result, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(3360), result.TotalPrice.Minor(), "client total is never used for pricing")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"client_total":"36.00"`)
	assert.Contains(t, buf.String(), `"server_total":"33.60"`)
}

func TestPlaceOrderCommandHandler_Handle_IgnoresClientTotalForTenLineCart(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	products := make([]*catalog.Product, 0, 10)
	items := make([]services.CartItem, 0, 10)
	for i := 1; i <= 10; i++ {
		price, err := kernel.NewPositiveMoney(int64(100 * i))
		require.NoError(t, err)
		p, err := catalog.NewProduct(kernel.NewUUID(), "Loaf", "bread", price, "pcs")
		require.NoError(t, err)
		products = append(products, p)
		items = append(items, services.CartItem{ProductID: p.ID(), Quantity: i})
	}

	clientTotal, err := kernel.NewMoney(1)
	require.NoError(t, err)
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, kernel.NewUUID(), items, &clientTotal)
	require.NoError(t, err)

	// sum of 100*i*i for i in 1..10
	const expectedTotal = int64(38500)

	catalogRepo := new(MockCatalogRepository)
	catalogRepo.On("GetProducts", ctx, mock.Anything).Return(products, nil).Once()
	catalogRepo.On("GetOverrides", ctx, customerID, mock.Anything).Return([]*catalog.PriceOverride{}, nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		sum := int64(0)
		for _, line := range o.Lines() {
			sum += line.Total().Minor()
		}
		return len(o.Lines()) == 10 && sum == expectedTotal && o.TotalPrice().Minor() == expectedTotal
	})).Return(nil).Once()

	uow := new(MockPlacementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CatalogRepository").Return(catalogRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, slog.New(slog.DiscardHandler))
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, expectedTotal, result.TotalPrice.Minor())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
