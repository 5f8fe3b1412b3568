package commands

import (
	"context"
	"time"

	"bakery/internal/pkg/errs"
)

// ConfirmPaymentCommandResult reports whether this confirmation changed anything.
type ConfirmPaymentCommandResult struct {
	Changed bool
}

// ConfirmPaymentCommandHandler marks orders paid. It is idempotent: a second
// confirmation of the same order is a successful no-op. Unverified events change
// nothing. Fulfillment state is never read or written.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory}
}

func (h ConfirmPaymentCommandHandler) Handle(
	ctx context.Context, cmd ConfirmPaymentCommand,
) (ConfirmPaymentCommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentCommandResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmPaymentCommandResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	changed := false
	if cmd.Verified() {
		var err error
		if changed, err = orderRepo.MarkPaid(ctx, cmd.OrderID(), time.Now().UTC()); err != nil {
			return ConfirmPaymentCommandResult{}, err
		}
	}

	if !changed {
		exists, err := orderRepo.Exists(ctx, cmd.OrderID())
		if err != nil {
			return ConfirmPaymentCommandResult{}, err
		}
		if !exists {
			return ConfirmPaymentCommandResult{}, errs.NewObjectNotFoundError("order", cmd.OrderID())
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return ConfirmPaymentCommandResult{}, err
	}

	return ConfirmPaymentCommandResult{Changed: changed}, nil
}
