package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves an owned order along a non-claiming edge
// (preparing->prepared or in_transit->delivered).
type AdvanceOrderCommand struct {
	change order.StateChange
	guard  guard.ConstructorGuard
}

func NewAdvanceOrderCommand(
	orderID kernel.UUID, caller staff.Identity, from, to order.FulfillmentState,
) (AdvanceOrderCommand, error) {
	change, err := order.PlanAdvance(orderID, caller, from, to)
	if err != nil {
		return AdvanceOrderCommand{}, err
	}
	return AdvanceOrderCommand{change: change, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) Change() order.StateChange {
	return c.change
}
