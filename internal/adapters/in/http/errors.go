package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorKind classifies err for clients. Request conflicts are checked before
// sink failures because the postgres sink reports a conflict it observed
// under lock wrapped in a sink failure.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, order.ErrCancellationPending):
		return "cancellation_pending"
	case errors.Is(err, order.ErrOrderReturnPending):
		return "order_return_pending"
	case errors.Is(err, order.ErrItemReturnPending):
		return "item_return_pending"
	case errors.Is(err, order.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, commands.ErrTransitionInFlight):
		return "in_flight"
	case errors.Is(err, order.ErrMissingReason):
		return "missing_reason"
	case errors.Is(err, order.ErrNoRejectionInProgress):
		return "no_rejection_in_progress"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, commands.ErrCommandSinkFailure):
		return "command_sink_failure"
	case isValidationError(err):
		return "validation"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}

// HTTPStatus maps err to a response status, in the same order as ErrorKind.
func HTTPStatus(err error) int {
	switch ErrorKind(err) {
	case "":
		return http.StatusOK
	case "cancellation_pending", "order_return_pending", "item_return_pending":
		return http.StatusConflict
	case "invalid_transition":
		return http.StatusUnprocessableEntity
	case "in_flight", "no_rejection_in_progress":
		return http.StatusConflict
	case "missing_reason", "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "command_sink_failure":
		return http.StatusBadGateway
	case "timeout":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, commands.ErrQuantityIsInvalid) ||
		errors.Is(err, commands.ErrProductRefIsRequired)
}

func respondError(c echo.Context, err error) error {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		message = "internal server error"
	}
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		c.Set(errorContextKey, err)
	}

	return c.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    ErrorKind(err),
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    "validation",
		Message: message,
	})
}
