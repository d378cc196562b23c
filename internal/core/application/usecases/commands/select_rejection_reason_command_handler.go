package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SelectRejectionReasonCommandHandler stores a candidate reason for an item
// in the AwaitingReason state. It never calls the command sink.
type SelectRejectionReasonCommandHandler struct {
	workflow ports.RejectionWorkflowStore
}

func NewSelectRejectionReasonCommandHandler(workflow ports.RejectionWorkflowStore) SelectRejectionReasonCommandHandler {
	return SelectRejectionReasonCommandHandler{
		workflow: workflow,
	}
}

// Handle returns the updated pending rejection, or
// order.ErrNoRejectionInProgress if the item is not awaiting a reason.
func (h SelectRejectionReasonCommandHandler) Handle(
	ctx context.Context,
	cmd SelectRejectionReasonCommand,
) (order.PendingRejection, error) {
	if err := cmd.Validate(); err != nil {
		return order.PendingRejection{}, err
	}

	pending, found, err := h.workflow.Get(ctx, cmd.ItemID())
	if err != nil {
		return order.PendingRejection{}, err
	}
	if !found || !pending.OrderID.IsEqual(cmd.OrderID()) {
		return order.PendingRejection{}, order.ErrNoRejectionInProgress
	}

	pending = pending.WithReason(cmd.Reason())
	if err = h.workflow.Put(ctx, pending); err != nil {
		return order.PendingRejection{}, err
	}

	return pending, nil
}
