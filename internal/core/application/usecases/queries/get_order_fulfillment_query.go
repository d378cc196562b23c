package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
	"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
)

// GetOrderFulfillmentQuery builds the vendor's working view of one order.
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}

	return GetOrderFulfillmentQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderFulfillmentQueryResponse is the order with one view per item.
type GetOrderFulfillmentQueryResponse struct {
	ID       kernel.UUID
	Status   order.Status
	Requests order.Requests
	Items    []ItemFulfillmentView
}

// ItemFulfillmentView tells the vendor what can be done with an item.
//
// AllowedNextStatuses is the transition table entry for the current status
// when the item is editable, and just the current status when a customer
// request locks it. PendingRejection is set while a rejection awaits its
// reason.
type ItemFulfillmentView struct {
	ID                  kernel.UUID
	Status              order.ItemStatus
	RejectionReason     string
	ReturnRequestedAt   *time.Time
	Quantity            int
	UnitPrice           kernel.Money
	LineTotal           kernel.Money
	ProductRef          string
	VariantRef          string
	AllowedNextStatuses order.StatusSet
	Editable            bool
	Conflict            order.ConflictKind
	ConflictLabel       string
	PendingRejection    *order.PendingRejection
}
