package commands

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// TransitionResult is what a successful claim, advance or cancel reports back.
type TransitionResult struct {
	OrderID kernel.UUID
	State   order.FulfillmentState
	Owner   *kernel.UUID
}

// applyStateChange runs change as a single conditional write. When the write does
// not land, the current row is loaded in the same transaction to tell the caller
// why: not found, conflict, forbidden or invalid transition.
func applyStateChange(ctx context.Context, uowFactory OrderUoWFactory, change order.StateChange) (TransitionResult, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	landed, err := orderRepo.ApplyStateChange(ctx, change, time.Now().UTC())
	if err != nil {
		return TransitionResult{}, err
	}

	current, err := orderRepo.Get(ctx, change.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	if !landed {
		return TransitionResult{}, change.Explain(current)
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{
		OrderID: current.ID(),
		State:   current.FulfillmentState(),
		Owner:   current.Owner(),
	}, nil
}
