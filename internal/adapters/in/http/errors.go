package http

import (
	"errors"
	"net/http"

	"bakery/internal/core/domain/model/catalog"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const conflictMessage = "order already moved, refresh queue"

// statusOf maps core errors onto HTTP statuses. Anything unclassified is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnknownProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)

	message := err.Error()
	switch status {
	case http.StatusConflict:
		if !errors.Is(err, errs.ErrAlreadyExists) {
			message = conflictMessage
		}
	case http.StatusInternalServerError:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func reject(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, Error{Code: status, Message: message})
}
