package commands

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/services"
)

// PlaceOrderCommandResult identifies the stored order and the total the server computed.
type PlaceOrderCommandResult struct {
	OrderID    kernel.UUID
	TotalPrice kernel.Money
}

// PlaceOrderCommandHandler resolves prices server side and persists the order with
// its frozen line snapshots in a single transaction. Either everything is stored
// or nothing is.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, logger)
//	result, err := handler.Handle(ctx, cmd)
//	var unknown *catalog.UnknownProductError
//	if errors.As(err, &unknown) {
//	    // nothing was written
//	}
type PlaceOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	resolver   services.PriceResolver
	logger     *slog.Logger
}

func NewPlaceOrderCommandHandler(uowFactory PlacementUoWFactory, logger *slog.Logger) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewPriceResolver(),
		logger:     logger.With("component", "place_order"),
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderCommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderCommandResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlaceOrderCommandResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()
	productIDs := services.ProductIDs(cmd.Items())

	products, err := catalogRepo.GetProducts(ctx, productIDs)
	if err != nil {
		return PlaceOrderCommandResult{}, err
	}

	overrides, err := catalogRepo.GetOverrides(ctx, cmd.CustomerID(), productIDs)
	if err != nil {
		return PlaceOrderCommandResult{}, err
	}

	resolved, err := h.resolver.Resolve(cmd.CustomerID(), cmd.Items(), products, overrides)
	if err != nil {
		return PlaceOrderCommandResult{}, err
	}

	lines := make([]*order.Line, 0, len(resolved))
	for _, item := range resolved {
		line, lineErr := order.NewLine(kernel.NewUUID(), item.ProductID, item.Quantity, item.UnitPrice)
		if lineErr != nil {
			return PlaceOrderCommandResult{}, lineErr
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.DeliveryAddressID(), lines, time.Now().UTC())
	if err != nil {
		return PlaceOrderCommandResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return PlaceOrderCommandResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderCommandResult{}, err
	}

	if clientTotal, ok := cmd.ClientTotal(); ok && !clientTotal.IsEqual(o.TotalPrice()) {
		h.logger.WarnContext(ctx, "client total differs from server total",
			"order_id", o.ID().String(),
			"customer_id", o.CustomerID().String(),
			"client_total", clientTotal.String(),
			"server_total", o.TotalPrice().String(),
		)
	}

	return PlaceOrderCommandResult{OrderID: o.ID(), TotalPrice: o.TotalPrice()}, nil
}
