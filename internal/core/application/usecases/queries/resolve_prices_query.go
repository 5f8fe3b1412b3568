package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/guard"
)

var ErrResolvePricesQueryIsNotConstructed = errors.New(
	"ResolvePricesQuery must be created via NewResolvePricesQuery constructor",
)

// ResolvePricesQuery prices a cart for a customer without placing it, for cart previews.
type ResolvePricesQuery struct {
	customerID kernel.UUID
	items      []services.CartItem
	guard      guard.ConstructorGuard
}

func NewResolvePricesQuery(customerID kernel.UUID, items []services.CartItem) (ResolvePricesQuery, error) {
	if err := services.ValidateCart(customerID, items); err != nil {
		return ResolvePricesQuery{}, err
	}
	return ResolvePricesQuery{
		customerID: customerID,
		items:      append([]services.CartItem(nil), items...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ResolvePricesQuery) Validate() error {
	return q.guard.Validate(ErrResolvePricesQueryIsNotConstructed)
}

func (q ResolvePricesQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q ResolvePricesQuery) Items() []services.CartItem {
	return append([]services.CartItem(nil), q.items...)
}

// ResolvePricesQueryResponse lists the resolved lines in request order.
type ResolvePricesQueryResponse struct {
	Items []services.ResolvedItem
	Total kernel.Money
}
