package commands

import (
	"context"
)

// ChangeItemStatusCommandHandler runs a single item transition: validate
// locally, send to the command sink, reconcile from the sink's answer.
//
// Example:
//
//	handler := NewChangeItemStatusCommandHandler(deps)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrCancellationPending):
//	    // the customer asked to cancel, the item is frozen
//	case errors.Is(err, ErrCommandSinkFailure):
//	    // the remote call failed, the item is unchanged
//	case err != nil:
//	    return err
//	}
type ChangeItemStatusCommandHandler struct {
	engine transitionEngine
}

// NewChangeItemStatusCommandHandler creates the handler. Deps.Observer may be nil.
func NewChangeItemStatusCommandHandler(deps TransitionDeps) ChangeItemStatusCommandHandler {
	return ChangeItemStatusCommandHandler{
		engine: newTransitionEngine(deps),
	}
}

// Handle returns the outcome of the request. Refusals are returned as
// errors; a missing rejection reason is not an error and yields
// OutcomeAwaitingReason.
func (h ChangeItemStatusCommandHandler) Handle(ctx context.Context, cmd ChangeItemStatusCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	return h.engine.submit(ctx, cmd.OrderID(), cmd.ItemID(), cmd.Status(), cmd.Reason())
}
