package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetOrderFulfillmentQueryHandler combines the order from the store with
// the rejection workflow state of its items. It works with either storage
// backend.
type GetOrderFulfillmentQueryHandler struct {
	store    ports.OrderStore
	workflow ports.RejectionWorkflowStore
}

func NewGetOrderFulfillmentQueryHandler(
	store ports.OrderStore,
	workflow ports.RejectionWorkflowStore,
) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{
		store:    store,
		workflow: workflow,
	}
}

func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (GetOrderFulfillmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	o, err := h.store.FetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	resp := GetOrderFulfillmentQueryResponse{
		ID:       o.ID(),
		Status:   o.Status(),
		Requests: o.Requests(),
		Items:    make([]ItemFulfillmentView, 0, len(o.Items())),
	}

	for _, item := range o.Items() {
		view, viewErr := h.itemView(ctx, o, item)
		if viewErr != nil {
			return GetOrderFulfillmentQueryResponse{}, viewErr
		}
		resp.Items = append(resp.Items, view)
	}

	return resp, nil
}

func (h GetOrderFulfillmentQueryHandler) itemView(ctx context.Context, o *order.Order, item *order.Item) (ItemFulfillmentView, error) {
	conflict := o.Conflict(item)
	view := ItemFulfillmentView{
		ID:                  item.ID(),
		Status:              item.Status(),
		RejectionReason:     item.RejectionReason(),
		ReturnRequestedAt:   item.ReturnRequestedAt(),
		Quantity:            item.Quantity(),
		UnitPrice:           item.UnitPrice(),
		LineTotal:           item.LineTotal(),
		ProductRef:          item.ProductRef(),
		VariantRef:          item.VariantRef(),
		AllowedNextStatuses: order.StatusSet{item.Status()},
		Editable:            services.IsEditable(o, item),
		Conflict:            conflict,
		ConflictLabel:       services.ConflictLabel(conflict),
	}

	if view.Editable {
		view.AllowedNextStatuses = item.Status().AllowedNextStatuses()
	}

	pending, found, err := h.workflow.Get(ctx, item.ID())
	if err != nil {
		return ItemFulfillmentView{}, err
	}
	if found && pending.OrderID.IsEqual(o.ID()) {
		view.PendingRejection = &pending
	}

	return view, nil
}
