package commands

import (
	"context"
)

// ClaimOrderCommandHandler executes claims. Among any number of concurrent claims
// for the same order and edge exactly one succeeds; the rest get a Conflict.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // lost the race
//	case err == nil:
//	    // result.Owner is the caller
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory}
}

// Handle runs the planned change as one conditional write in its own transaction
// and reports the order as it is after the write.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	return applyStateChange(ctx, h.uowFactory, cmd.Change())
}
