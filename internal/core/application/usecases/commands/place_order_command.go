package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand is a customer's request to turn a cart into an order.
// Prices are never part of the command; an optional client total is carried
// only so a mismatch with the server total can be logged.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, addressID,
//	    []services.CartItem{{ProductID: croissantID, Quantity: 12}}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
type PlaceOrderCommand struct {
	orderID           kernel.UUID
	customerID        kernel.UUID
	deliveryAddressID kernel.UUID
	items             []services.CartItem
	clientTotal       *kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the cart shape: customer and address present, at least
// one item, positive bounded quantities and no product listed twice.
func NewPlaceOrderCommand(
	orderID, customerID, deliveryAddressID kernel.UUID,
	items []services.CartItem,
	clientTotal *kernel.Money,
) (PlaceOrderCommand, error) {
	var addressErr error
	if err := deliveryAddressID.Validate(); err != nil {
		addressErr = errs.NewValueIsRequiredErrorWithCause("delivery address id", err)
	}

	if err := errors.Join(
		orderID.Validate(),
		addressErr,
		services.ValidateCart(customerID, items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd := PlaceOrderCommand{
		orderID:           orderID,
		customerID:        customerID,
		deliveryAddressID: deliveryAddressID,
		items:             append([]services.CartItem(nil), items...),
		guard:             guard.NewConstructorGuard(),
	}
	if clientTotal != nil {
		total := *clientTotal
		cmd.clientTotal = &total
	}
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) DeliveryAddressID() kernel.UUID {
	return c.deliveryAddressID
}

func (c PlaceOrderCommand) Items() []services.CartItem {
	return append([]services.CartItem(nil), c.items...)
}

// ClientTotal is the total the client displayed, if it sent one.
func (c PlaceOrderCommand) ClientTotal() (kernel.Money, bool) {
	if c.clientTotal == nil {
		return kernel.Money{}, false
	}
	return *c.clientTotal, true
}
