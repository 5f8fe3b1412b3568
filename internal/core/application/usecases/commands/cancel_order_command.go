package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is the privileged cancellation available to managers and admins.
// The current owner, if any, is left in place.
type CancelOrderCommand struct {
	change order.StateChange
	guard  guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, caller staff.Identity) (CancelOrderCommand, error) {
	change, err := order.PlanCancel(orderID, caller)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{change: change, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Change() order.StateChange {
	return c.change
}
