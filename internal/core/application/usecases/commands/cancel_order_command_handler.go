package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels any non-terminal order. Staff holding the order
// are not notified; they find out on their next write or queue poll.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle runs the planned change as one conditional write in its own transaction
// and reports the order as it is after the write.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	return applyStateChange(ctx, h.uowFactory, cmd.Change())
}
