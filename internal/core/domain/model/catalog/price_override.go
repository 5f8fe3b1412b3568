package catalog

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrPriceOverrideIsNotConstructed = errors.New("PriceOverride must be created via NewPriceOverride constructor")

// PriceOverride is a customer specific price for one product.
// At most one exists per (customer, product) pair.
type PriceOverride struct {
	customerID kernel.UUID
	productID  kernel.UUID
	price      kernel.Money
	guard      guard.ConstructorGuard
}

func NewPriceOverride(customerID, productID kernel.UUID, price kernel.Money) (*PriceOverride, error) {
	var priceErr error
	if !price.IsPositive() {
		priceErr = errs.NewValueIsOutOfRangeError("override price", price.Minor(), 1, "max int64")
	}
	if err := errors.Join(customerID.Validate(), productID.Validate(), priceErr); err != nil {
		return nil, err
	}
	return &PriceOverride{
		customerID: customerID,
		productID:  productID,
		price:      price,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (o *PriceOverride) Validate() error {
	if o == nil {
		return ErrPriceOverrideIsNotConstructed
	}
	return o.guard.Validate(ErrPriceOverrideIsNotConstructed)
}

func (o *PriceOverride) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *PriceOverride) ProductID() kernel.UUID {
	return o.productID
}

func (o *PriceOverride) Price() kernel.Money {
	return o.price
}
