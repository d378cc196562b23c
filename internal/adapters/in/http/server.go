package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on. The command and query handlers
// satisfy them as they are.
type (
	ChangeItemStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeItemStatusCommand) (commands.TransitionResult, error)
	}
	ChangeItemStatusesHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeItemStatusesCommand) ([]commands.ItemStatusChangeResult, error)
	}
	SelectRejectionReasonHandler interface {
		Handle(ctx context.Context, cmd commands.SelectRejectionReasonCommand) (order.PendingRejection, error)
	}
	ConfirmRejectionHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmRejectionCommand) (commands.TransitionResult, error)
	}
	CancelRejectionHandler interface {
		Handle(ctx context.Context, cmd commands.CancelRejectionCommand) error
	}
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error
	}
	SubmitCustomerRequestHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitCustomerRequestCommand) error
	}
	RejectCustomerRequestHandler interface {
		Handle(ctx context.Context, cmd commands.RejectCustomerRequestCommand) error
	}
	GetOrderFulfillmentHandler interface {
		Handle(ctx context.Context, query queries.GetOrderFulfillmentQuery) (queries.GetOrderFulfillmentQueryResponse, error)
	}
	GetItemHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetItemHistoryQuery) ([]queries.GetItemHistoryQueryResponse, error)
	}
	GetOpenOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP. The vendor transition
// handlers are always required. The back-office handlers are only available
// when the service owns the orders; their routes are not mounted when nil.
type Handlers struct {
	ChangeItemStatus      ChangeItemStatusHandler
	ChangeItemStatuses    ChangeItemStatusesHandler
	SelectRejectionReason SelectRejectionReasonHandler
	ConfirmRejection      ConfirmRejectionHandler
	CancelRejection       CancelRejectionHandler
	GetOrderFulfillment   GetOrderFulfillmentHandler

	PlaceOrder            PlaceOrderHandler
	SubmitCustomerRequest SubmitCustomerRequestHandler
	RejectCustomerRequest RejectCustomerRequestHandler
	GetItemHistory        GetItemHistoryHandler
	GetOpenOrders         GetOpenOrdersHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts the API routes on e behind mw.
func (s *Server) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", mw...)

	api.GET("/rejection-reasons", s.GetRejectionReasons)

	if s.h.GetOpenOrders != nil {
		api.GET("/orders/open", s.GetOpenOrders)
	}
	if s.h.PlaceOrder != nil {
		api.POST("/orders", s.PlaceOrder)
	}

	api.GET("/orders/:orderId", s.GetOrder)
	api.PATCH("/orders/:orderId/items/:itemId/status", s.ChangeItemStatus)
	api.POST("/orders/:orderId/items/status", s.ChangeItemStatuses)
	api.PUT("/orders/:orderId/items/:itemId/rejection", s.SelectRejectionReason)
	api.POST("/orders/:orderId/items/:itemId/rejection/confirm", s.ConfirmRejection)
	api.DELETE("/orders/:orderId/items/:itemId/rejection", s.CancelRejection)

	if s.h.GetItemHistory != nil {
		api.GET("/orders/:orderId/items/:itemId/history", s.GetItemHistory)
	}
	if s.h.SubmitCustomerRequest != nil {
		api.POST("/orders/:orderId/cancellation-request", s.RequestCancellation)
		api.POST("/orders/:orderId/return-request", s.RequestOrderReturn)
		api.POST("/orders/:orderId/items/:itemId/return-request", s.RequestItemReturn)
	}
	if s.h.RejectCustomerRequest != nil {
		api.POST("/orders/:orderId/cancellation-request/rejection", s.RejectCancellationRequest)
		api.POST("/orders/:orderId/return-request/rejection", s.RejectReturnRequest)
	}
}
