package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"bakery/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// ServerInterface lists every operation of api/openapi.yaml. Path parameters
// arrive already bound; request bodies are read by the implementation.
//
// Server is the production implementation. Tests may register any other
// implementation with RegisterHandlers.
type ServerInterface interface {
	ResolvePrices(ctx echo.Context) error
	PlaceOrder(ctx echo.Context) error
	ClaimOrder(ctx echo.Context, orderID string) error
	AdvanceOrder(ctx echo.Context, orderID string) error
	CancelOrder(ctx echo.Context, orderID string) error
	ConfirmPayment(ctx echo.Context) error
	GetWorkQueue(ctx echo.Context, view string) error
}

// ServerInterfaceWrapper adapts ServerInterface to echo handlers. It binds and
// type checks path parameters and answers 400 when they are malformed, so the
// server methods never see a missing parameter.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// bindPathParam binds a required simple-style path parameter.
func bindPathParam(ctx echo.Context, name string, dest *string) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) ResolvePrices(ctx echo.Context) error {
	return w.Handler.ResolvePrices(ctx)
}

func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	return w.Handler.PlaceOrder(ctx)
}

func (w *ServerInterfaceWrapper) ClaimOrder(ctx echo.Context) error {
	var orderID string
	if err := bindPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.ClaimOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) AdvanceOrder(ctx echo.Context) error {
	var orderID string
	if err := bindPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.AdvanceOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	var orderID string
	if err := bindPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	return w.Handler.ConfirmPayment(ctx)
}

func (w *ServerInterfaceWrapper) GetWorkQueue(ctx echo.Context) error {
	var view string
	if err := bindPathParam(ctx, "view", &view); err != nil {
		return err
	}
	return w.Handler.GetWorkQueue(ctx, view)
}

// Guards holds the per-audience middlewares placed in front of each route.
// Every route gets exactly one identity guard followed by Validate:
//
//   - Customer for price previews and placement
//   - Staff for transitions and work queues
//   - Verifier for payment confirmations
type Guards struct {
	Customer echo.MiddlewareFunc
	Staff    echo.MiddlewareFunc
	Verifier echo.MiddlewareFunc
	Validate echo.MiddlewareFunc
}

// RegisterHandlers adds every API route to router. Authentication runs before
// request validation, so an anonymous caller learns nothing about the schema.
//
// The guards are attached per route rather than per group: groups sharing the
// /api/v1 prefix would otherwise run their middleware for each other's 404s.
//
// Example:
//
//	e := echo.New()
//	RegisterHandlers(e, server, Guards{
//	    Customer: RequireCustomer(),
//	    Staff:    RequireStaff(directory),
//	    Verifier: RequireVerifier(token),
//	    Validate: validate,
//	})
func RegisterHandlers(router *echo.Echo, si ServerInterface, guards Guards) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/prices/resolve", w.ResolvePrices, guards.Customer, guards.Validate)
	router.POST("/api/v1/orders", w.PlaceOrder, guards.Customer, guards.Validate)
	router.POST("/api/v1/orders/:orderId/claim", w.ClaimOrder, guards.Staff, guards.Validate)
	router.POST("/api/v1/orders/:orderId/advance", w.AdvanceOrder, guards.Staff, guards.Validate)
	router.POST("/api/v1/orders/:orderId/cancel", w.CancelOrder, guards.Staff, guards.Validate)
	router.POST("/api/v1/payments/confirmations", w.ConfirmPayment, guards.Verifier, guards.Validate)
	router.GET("/api/v1/queues/:view", w.GetWorkQueue, guards.Staff, guards.Validate)
}

// Config wires the echo instance built by NewRouter. Staff resolves X-Staff-ID
// headers; VerifierToken is the shared secret of the payment verifier.
type Config struct {
	Server        ServerInterface
	Staff         StaffDirectory
	VerifierToken string
	Logger        *slog.Logger
}

// NewRouter builds the echo instance: API routes, /health and /swagger.
// It fails when the embedded OpenAPI document does not load or validate.
//
// Example:
//
//	router, err := http.NewRouter(http.Config{
//	    Server:        http.NewServer(handlers, logger),
//	    Staff:         staffRepository,
//	    VerifierToken: cfg.VerifierToken,
//	    Logger:        logger,
//	})
//	if err != nil {
//	    return err
//	}
//	return router.Start(":8080")
func NewRouter(cfg Config) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger.With("component", "http_access")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	RegisterHandlers(e, cfg.Server, Guards{
		Customer: RequireCustomer(),
		Staff:    RequireStaff(cfg.Staff),
		Verifier: RequireVerifier(cfg.VerifierToken),
		Validate: validate,
	})
	return e, nil
}

// LoadOpenAPI parses and validates the embedded document. The result is shared
// by request validation and the swagger endpoint.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

const swaggerInstance = "bakery"

// swaggerDoc serves the embedded document to swag as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var swaggerOnce sync.Once

// registerSwagger publishes doc to the swag registry once per process.
func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	swaggerOnce.Do(func() {
		swag.Register(swaggerInstance, swaggerDoc{json: string(raw)})
	})
	return nil
}

// errorHandler renders echo's own errors (unknown routes, binding failures) in the API error shape.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(status)
		return
	}
	_ = ctx.JSON(status, Error{Code: status, Message: message})
}
