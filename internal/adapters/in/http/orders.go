package http

import (
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PlaceOrder handles POST /api/v1/orders. Missing identifiers are generated.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := optionalUUID("orderId", req.OrderID)
	if err != nil {
		return respondError(c, err)
	}

	lines := make([]commands.PlaceOrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, idErr := optionalUUID("itemId", item.ItemID)
		if idErr != nil {
			return respondError(c, idErr)
		}
		price, priceErr := kernel.MoneyFromString(item.UnitPrice, item.Currency)
		if priceErr != nil {
			return respondError(c, priceErr)
		}
		lines = append(lines, commands.PlaceOrderLine{
			ItemID:     itemID,
			ProductRef: item.ProductRef,
			VariantRef: item.VariantRef,
			Quantity:   item.Quantity,
			UnitPrice:  price,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, lines)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.h.PlaceOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, PlaceOrderResponse{ID: orderID.String()})
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(c echo.Context) error {
	orders, err := s.h.GetOpenOrders.Handle(c.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]OpenOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, OpenOrderResponse{
			ID:                     o.ID.String(),
			Status:                 o.Status,
			OpenItems:              o.OpenItems,
			CustomerRequestPending: o.CustomerRequestPending,
			PlacedAt:               o.PlacedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// RequestCancellation handles POST /api/v1/orders/:orderId/cancellation-request.
func (s *Server) RequestCancellation(c echo.Context) error {
	return s.submitCustomerRequest(c, commands.RequestCancellation)
}

// RequestOrderReturn handles POST /api/v1/orders/:orderId/return-request.
func (s *Server) RequestOrderReturn(c echo.Context) error {
	return s.submitCustomerRequest(c, commands.RequestOrderReturn)
}

// RequestItemReturn handles POST /api/v1/orders/:orderId/items/:itemId/return-request.
func (s *Server) RequestItemReturn(c echo.Context) error {
	return s.submitCustomerRequest(c, commands.RequestItemReturn)
}

// RejectCancellationRequest handles POST /api/v1/orders/:orderId/cancellation-request/rejection.
func (s *Server) RejectCancellationRequest(c echo.Context) error {
	return s.rejectCustomerRequest(c, commands.RequestCancellation)
}

// RejectReturnRequest handles POST /api/v1/orders/:orderId/return-request/rejection.
func (s *Server) RejectReturnRequest(c echo.Context) error {
	return s.rejectCustomerRequest(c, commands.RequestOrderReturn)
}

func (s *Server) submitCustomerRequest(c echo.Context, kind commands.RequestKind) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}

	var itemID kernel.UUID
	if kind == commands.RequestItemReturn {
		if itemID, err = pathUUID(c, "itemId"); err != nil {
			return respondError(c, err)
		}
	}

	cmd, err := commands.NewSubmitCustomerRequestCommand(orderID, kind, itemID, time.Now().UTC())
	if err != nil {
		return respondError(c, err)
	}

	if err = s.h.SubmitCustomerRequest.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) rejectCustomerRequest(c echo.Context, kind commands.RequestKind) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}

	var req RejectCustomerRequestRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRejectCustomerRequestCommand(orderID, kind, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.h.RejectCustomerRequest.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func optionalUUID(name, raw string) (kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return kernel.NewUUID(), nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
