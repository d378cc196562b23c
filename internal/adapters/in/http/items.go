package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetRejectionReasons handles GET /api/v1/rejection-reasons.
func (s *Server) GetRejectionReasons(c echo.Context) error {
	reasons := order.AllRejectionReasons()
	resp := make([]RejectionReasonResponse, 0, len(reasons))
	for _, r := range reasons {
		resp = append(resp, RejectionReasonResponse{Code: r.String(), Label: r.Label()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderFulfillmentQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.h.GetOrderFulfillment.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toFulfillmentResponse(view))
}

// ChangeItemStatus handles PATCH /api/v1/orders/:orderId/items/:itemId/status.
func (s *Server) ChangeItemStatus(c echo.Context) error {
	orderID, itemID, err := orderAndItem(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ChangeItemStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, reason, err := parseTransition(req.Status, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewChangeItemStatusCommand(orderID, itemID, status, reason)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.h.ChangeItemStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondTransition(c, result)
}

// ChangeItemStatuses handles POST /api/v1/orders/:orderId/items/status.
// Every change gets its own entry in the response; the request as a whole
// only fails when it is malformed.
func (s *Server) ChangeItemStatuses(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}

	var req ChangeItemStatusesRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	changes := make([]commands.ItemStatusChange, 0, len(req.Changes))
	for _, change := range req.Changes {
		itemID, idErr := kernel.UUIDFromString(change.ItemID)
		if idErr != nil {
			return respondError(c, errs.NewValueIsInvalidErrorWithCause("itemId", idErr))
		}
		status, reason, parseErr := parseTransition(change.Status, change.Reason)
		if parseErr != nil {
			return respondError(c, parseErr)
		}
		changes = append(changes, commands.ItemStatusChange{ItemID: itemID, Status: status, Reason: reason})
	}

	cmd, err := commands.NewChangeItemStatusesCommand(orderID, changes)
	if err != nil {
		return respondError(c, err)
	}

	results, err := s.h.ChangeItemStatuses.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]ItemStatusChangeResponse, 0, len(results))
	for _, r := range results {
		entry := ItemStatusChangeResponse{ItemID: r.ItemID.String()}
		if r.Err != nil {
			status := HTTPStatus(r.Err)
			message := r.Err.Error()
			if status == http.StatusInternalServerError {
				c.Logger().Error(r.Err)
				message = "internal server error"
			}
			entry.Error = &ErrorResponse{Code: status, Kind: ErrorKind(r.Err), Message: message}
		} else {
			entry.Outcome = string(r.Result.Outcome)
		}
		resp = append(resp, entry)
	}

	return c.JSON(http.StatusOK, resp)
}

// SelectRejectionReason handles PUT /api/v1/orders/:orderId/items/:itemId/rejection.
func (s *Server) SelectRejectionReason(c echo.Context) error {
	orderID, itemID, err := orderAndItem(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SelectRejectionReasonRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reason, err := order.ParseRejectionReason(req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewSelectRejectionReasonCommand(orderID, itemID, reason.String())
	if err != nil {
		return respondError(c, err)
	}

	pending, err := s.h.SelectRejectionReason.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toPendingRejectionResponse(pending))
}

// ConfirmRejection handles POST /api/v1/orders/:orderId/items/:itemId/rejection/confirm.
func (s *Server) ConfirmRejection(c echo.Context) error {
	orderID, itemID, err := orderAndItem(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewConfirmRejectionCommand(orderID, itemID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.h.ConfirmRejection.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondTransition(c, result)
}

// CancelRejection handles DELETE /api/v1/orders/:orderId/items/:itemId/rejection.
func (s *Server) CancelRejection(c echo.Context) error {
	orderID, itemID, err := orderAndItem(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCancelRejectionCommand(orderID, itemID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.h.CancelRejection.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetItemHistory handles GET /api/v1/orders/:orderId/items/:itemId/history.
func (s *Server) GetItemHistory(c echo.Context) error {
	orderID, itemID, err := orderAndItem(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetItemHistoryQuery(orderID, itemID)
	if err != nil {
		return respondError(c, err)
	}

	history, err := s.h.GetItemHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]HistoryEntryResponse, 0, len(history))
	for _, h := range history {
		resp = append(resp, HistoryEntryResponse{
			From:      h.From,
			To:        h.To,
			Reason:    h.Reason,
			ChangedAt: h.ChangedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func respondTransition(c echo.Context, result commands.TransitionResult) error {
	status := http.StatusOK
	if result.Outcome == commands.OutcomeAwaitingReason {
		status = http.StatusAccepted
	}
	return c.JSON(status, toTransitionResponse(result))
}

// parseTransition reads the requested status. A reason is only kept for
// rejections and must come from the closed reason list.
func parseTransition(rawStatus, rawReason string) (order.ItemStatus, string, error) {
	status, err := order.ParseItemStatus(rawStatus)
	if err != nil {
		return order.ItemUnknown, "", err
	}

	if status != order.ItemRejected || strings.TrimSpace(rawReason) == "" {
		return status, "", nil
	}

	reason, err := order.ParseRejectionReason(rawReason)
	if err != nil {
		return order.ItemUnknown, "", err
	}

	return status, reason.String(), nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func orderAndItem(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, itemID, nil
}
