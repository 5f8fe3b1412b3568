package queries_test

import (
	"context"
	"errors"
	"testing"

	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) GetProducts(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*catalog.Product)
	return products, args.Error(1)
}

func (m *MockCatalogReader) GetOverrides(
	ctx context.Context, customerID kernel.UUID, productIDs []kernel.UUID,
) ([]*catalog.PriceOverride, error) {
	args := m.Called(ctx, customerID, productIDs)
	overrides, _ := args.Get(0).([]*catalog.PriceOverride)
	return overrides, args.Error(1)
}

func TestResolvePricesQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	price, err := kernel.NewPositiveMoney(520)
	require.NoError(t, err)
	rye, err := catalog.NewProduct(kernel.NewUUID(), "Rye loaf", "bread", price, "pcs")
	require.NoError(t, err)

	t.Run("should price cart", func(t *testing.T) {
		query, err := queries.NewResolvePricesQuery(customerID, []services.CartItem{{ProductID: rye.ID(), Quantity: 3}})
		require.NoError(t, err)

		reader := new(MockCatalogReader)
		reader.On("GetProducts", ctx, []kernel.UUID{rye.ID()}).Return([]*catalog.Product{rye}, nil).Once()
		reader.On("GetOverrides", ctx, customerID, []kernel.UUID{rye.ID()}).Return(nil, nil).Once()

		resp, err := queries.NewResolvePricesQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(520), resp.Items[0].UnitPrice.Minor())
		assert.Equal(t, int64(1560), resp.Total.Minor())
		reader.AssertExpectations(t)
	})

	t.Run("should report unknown product", func(t *testing.T) {
		missing := kernel.NewUUID()
		query, err := queries.NewResolvePricesQuery(customerID, []services.CartItem{{ProductID: missing, Quantity: 1}})
		require.NoError(t, err)

		reader := new(MockCatalogReader)
		reader.On("GetProducts", ctx, mock.Anything).Return([]*catalog.Product{}, nil)
		reader.On("GetOverrides", ctx, customerID, mock.Anything).Return([]*catalog.PriceOverride{}, nil)

		_, err = queries.NewResolvePricesQueryHandler(reader).Handle(ctx, query)

		assert.ErrorIs(t, err, catalog.ErrUnknownProduct)
	})

	t.Run("should pass storage errors through", func(t *testing.T) {
		query, err := queries.NewResolvePricesQuery(customerID, []services.CartItem{{ProductID: rye.ID(), Quantity: 1}})
		require.NoError(t, err)

		reader := new(MockCatalogReader)
		reader.On("GetProducts", ctx, mock.Anything).Return(nil, errs.NewStorageError("get products", errors.New("down")))

		_, err = queries.NewResolvePricesQueryHandler(reader).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrStorage)
	})
}

func TestNewResolvePricesQuery_Validation(t *testing.T) {
	_, err := queries.NewResolvePricesQuery(kernel.NewUUID(), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var q queries.ResolvePricesQuery
	require.ErrorIs(t, q.Validate(), queries.ErrResolvePricesQueryIsNotConstructed)
}
