package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Identity headers. The customer and staff ids are set by the authenticating
// gateway in front of this service; the verifier token is a shared secret.
const (
	HeaderCustomerID    = "X-Customer-ID"
	HeaderStaffID       = "X-Staff-ID"
	HeaderVerifierToken = "X-Verifier-Token"

	customerKey = "customer_id"
	staffKey    = "staff_identity"
)

// RequireCustomer reads the customer id set by the upstream gateway and stores
// it on the echo context. A missing or malformed header is 401.
//
// Example:
//
//	router.POST("/api/v1/orders", placeOrder, RequireCustomer())
func RequireCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := ctx.Request().Header.Get(HeaderCustomerID)
			if raw == "" {
				return reject(ctx, http.StatusUnauthorized, "missing "+HeaderCustomerID)
			}
			customerID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return reject(ctx, http.StatusUnauthorized, "malformed "+HeaderCustomerID)
			}
			ctx.Set(customerKey, customerID)
			return next(ctx)
		}
	}
}

// RequireStaff turns an authenticated staff id into a staff.Identity. Unknown ids
// are unauthorized, inactive members are forbidden.
func RequireStaff(directory StaffDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := ctx.Request().Header.Get(HeaderStaffID)
			if raw == "" {
				return reject(ctx, http.StatusUnauthorized, "missing "+HeaderStaffID)
			}
			staffID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return reject(ctx, http.StatusUnauthorized, "malformed "+HeaderStaffID)
			}

			member, err := directory.Get(ctx.Request().Context(), staffID)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return reject(ctx, http.StatusUnauthorized, "unknown staff member")
			}
			if err != nil {
				return err
			}

			identity, err := member.Identity()
			if err != nil {
				return reject(ctx, http.StatusForbidden, err.Error())
			}
			ctx.Set(staffKey, identity)
			return next(ctx)
		}
	}
}

// RequireVerifier admits only the payment verifier. The token is compared in
// constant time; a mismatch is 401.
func RequireVerifier(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			got := ctx.Request().Header.Get(HeaderVerifierToken)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return reject(ctx, http.StatusUnauthorized, "invalid verifier token")
			}
			return next(ctx)
		}
	}
}

// ValidateRequests checks each request against doc before it reaches a handler.
// Authentication is left to the Require* middlewares.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return reject(ctx, http.StatusBadRequest, firstLine(err.Error()))
			}
			return next(ctx)
		}
	}, nil
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
			}
			if v.Error != nil {
				logger.ErrorContext(ctx.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(ctx.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}

func customerFrom(ctx echo.Context) kernel.UUID {
	id, _ := ctx.Get(customerKey).(kernel.UUID)
	return id
}

func staffFrom(ctx echo.Context) staff.Identity {
	identity, _ := ctx.Get(staffKey).(staff.Identity)
	return identity
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
