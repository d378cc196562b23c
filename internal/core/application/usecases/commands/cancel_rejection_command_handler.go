package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// CancelRejectionCommandHandler returns an item to Idle. Cancelling an idle
// item succeeds.
type CancelRejectionCommandHandler struct {
	workflow ports.RejectionWorkflowStore
}

func NewCancelRejectionCommandHandler(workflow ports.RejectionWorkflowStore) CancelRejectionCommandHandler {
	return CancelRejectionCommandHandler{
		workflow: workflow,
	}
}

func (h CancelRejectionCommandHandler) Handle(ctx context.Context, cmd CancelRejectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, found, err := h.workflow.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}
	if !found || !pending.OrderID.IsEqual(cmd.OrderID()) {
		return nil
	}

	return h.workflow.Delete(ctx, cmd.ItemID())
}
