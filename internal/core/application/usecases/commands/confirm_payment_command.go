package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand carries a verifier's (order id, verified) event.
type ConfirmPaymentCommand struct {
	orderID  kernel.UUID
	verified bool
	guard    guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID kernel.UUID, verified bool) (ConfirmPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	return ConfirmPaymentCommand{orderID: orderID, verified: verified, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPaymentCommand) Verified() bool {
	return c.verified
}
