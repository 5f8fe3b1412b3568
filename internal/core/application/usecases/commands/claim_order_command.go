package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand asks to take ownership of an order by moving it along a
// claiming edge (pending->preparing or prepared->in_transit).
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, caller, order.Pending, order.Preparing)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // somebody else was faster; refresh the queue
//	}
type ClaimOrderCommand struct {
	change order.StateChange
	guard  guard.ConstructorGuard
}

// NewClaimOrderCommand checks the edge against the transition table and the caller's
// role before anything touches storage.
func NewClaimOrderCommand(
	orderID kernel.UUID, caller staff.Identity, from, to order.FulfillmentState,
) (ClaimOrderCommand, error) {
	change, err := order.PlanClaim(orderID, caller, from, to)
	if err != nil {
		return ClaimOrderCommand{}, err
	}
	return ClaimOrderCommand{change: change, guard: guard.NewConstructorGuard()}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) Change() order.StateChange {
	return c.change
}
