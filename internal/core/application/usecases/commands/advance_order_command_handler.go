package commands

import (
	"context"
)

// AdvanceOrderCommandHandler executes owner-only transitions. A caller who is not
// the owner gets Forbidden; a caller whose order already moved on gets
// InvalidTransition naming the current state.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{uowFactory: uowFactory}
}

// Handle runs the planned change as one conditional write in its own transaction
// and reports the order as it is after the write.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	return applyStateChange(ctx, h.uowFactory, cmd.Change())
}
