package http

import (
	"context"
	"log/slog"
	"net/http"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/queue"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/core/domain/services"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StaffDirectory resolves the member behind an X-Staff-ID header.
// ports.StaffRepository satisfies it.
type StaffDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (*staff.Member, error)
}

// The handler interfaces below mirror the use case handlers one to one, so tests
// can replace any of them with a mock.

type ResolvePricesHandler interface {
	Handle(ctx context.Context, query queries.ResolvePricesQuery) (queries.ResolvePricesQueryResponse, error)
}

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderCommandResult, error)
}

type ClaimOrderHandler interface {
	Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (commands.TransitionResult, error)
}

type AdvanceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (commands.TransitionResult, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.TransitionResult, error)
}

type ConfirmPaymentHandler interface {
	Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (commands.ConfirmPaymentCommandResult, error)
}

type WorkQueueHandler interface {
	Handle(ctx context.Context, query queries.GetWorkQueueQuery) (queries.GetWorkQueueQueryResponse, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	ResolvePrices  ResolvePricesHandler
	PlaceOrder     PlaceOrderHandler
	ClaimOrder     ClaimOrderHandler
	AdvanceOrder   AdvanceOrderHandler
	CancelOrder    CancelOrderHandler
	ConfirmPayment ConfirmPaymentHandler
	WorkQueue      WorkQueueHandler
}

// Server implements ServerInterface on top of the application use cases. It
// translates JSON bodies into commands and queries, and core errors into the
// API error shape through one status table (statusOf).
//
// Identity is never read from the body: the guards installed by RegisterHandlers
// put the customer id or staff identity on the echo context first.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a Server. Every field of handlers must be set.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger.With("component", "http")}
}

// ResolvePrices handles POST /api/v1/prices/resolve.
func (s *Server) ResolvePrices(ctx echo.Context) error {
	var body Cart
	if err := ctx.Bind(&body); err != nil {
		return reject(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items, err := cartItems(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewResolvePricesQuery(customerFrom(ctx), items)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.ResolvePrices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	out := ResolvedCart{Items: make([]ResolvedItem, 0, len(resp.Items)), Total: resp.Total.Minor()}
	for _, item := range resp.Items {
		out.Items = append(out.Items, ResolvedItem{
			ProductID:  item.ProductID.Bytes(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Minor(),
			LineTotal:  item.LineTotal.Minor(),
			Overridden: item.Overridden,
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return reject(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.OrderID != nil {
		id, err := kernel.UUIDFromGoogle(*body.OrderID)
		if err != nil {
			return s.fail(ctx, err)
		}
		orderID = id
	}
	addressID, err := kernel.UUIDFromGoogle(body.DeliveryAddressID)
	if err != nil {
		return s.fail(ctx, err)
	}
	items, err := cartItems(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}
	var expected *kernel.Money
	if body.ExpectedTotal != nil {
		total, err := kernel.NewMoney(*body.ExpectedTotal)
		if err != nil {
			return s.fail(ctx, err)
		}
		expected = &total
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, customerFrom(ctx), addressID, items, expected)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlacedOrder{
		OrderID:    result.OrderID.Bytes(),
		TotalPrice: result.TotalPrice.Minor(),
	})
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim.
func (s *Server) ClaimOrder(ctx echo.Context, orderID string) error {
	id, edge, err := transitionRequest(ctx, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(id, staffFrom(ctx), edge.From, edge.To)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.ClaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResult(result))
}

// AdvanceOrder handles POST /api/v1/orders/{orderId}/advance.
func (s *Server) AdvanceOrder(ctx echo.Context, orderID string) error {
	id, edge, err := transitionRequest(ctx, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(id, staffFrom(ctx), edge.From, edge.To)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResult(result))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID string) error {
	id, err := parseOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, staffFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransitionResult(result))
}

// ConfirmPayment handles POST /api/v1/payments/confirmations.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var body PaymentConfirmation
	if err := ctx.Bind(&body); err != nil {
		return reject(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromGoogle(body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewConfirmPaymentCommand(id, body.Verified)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, PaymentConfirmationResult{OrderID: body.OrderID, Changed: result.Changed})
}

// GetWorkQueue handles GET /api/v1/queues/{view}.
func (s *Server) GetWorkQueue(ctx echo.Context, view string) error {
	v, err := queue.ParseView(view)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetWorkQueueQuery(staffFrom(ctx), v)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.WorkQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	out := make([]QueueOrder, 0, len(resp.Items))
	for _, item := range resp.Items {
		lines := make([]QueueLine, 0, len(item.Lines))
		for _, line := range item.Lines {
			lines = append(lines, QueueLine{
				ProductID:   line.ProductID.Bytes(),
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice.Minor(),
			})
		}
		out = append(out, QueueOrder{
			OrderID:           item.ID.Bytes(),
			CustomerID:        item.CustomerID.Bytes(),
			DeliveryAddressID: item.DeliveryAddressID.Bytes(),
			TotalPrice:        item.TotalPrice.Minor(),
			State:             item.FulfillmentState.String(),
			PaymentState:      item.PaymentState.String(),
			OwnerStaffID:      optionalID(item.Owner),
			CreatedAt:         item.CreatedAt,
			Lines:             lines,
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

type requestedEdge struct {
	From order.FulfillmentState
	To   order.FulfillmentState
}

func transitionRequest(ctx echo.Context, orderID string) (kernel.UUID, requestedEdge, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return kernel.UUID{}, requestedEdge{}, err
	}

	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, requestedEdge{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	from, err := order.ParseFulfillmentState(body.From)
	if err != nil {
		return kernel.UUID{}, requestedEdge{}, err
	}
	to, err := order.ParseFulfillmentState(body.To)
	if err != nil {
		return kernel.UUID{}, requestedEdge{}, err
	}
	return id, requestedEdge{From: from, To: to}, nil
}

func parseOrderID(raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}

func cartItems(in []CartItem) ([]services.CartItem, error) {
	items := make([]services.CartItem, 0, len(in))
	for _, item := range in {
		productID, err := kernel.UUIDFromGoogle(item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, services.CartItem{ProductID: productID, Quantity: item.Quantity})
	}
	return items, nil
}

func toTransitionResult(result commands.TransitionResult) TransitionResult {
	return TransitionResult{
		OrderID:      result.OrderID.Bytes(),
		State:        result.State.String(),
		OwnerStaffID: optionalID(result.Owner),
	}
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
