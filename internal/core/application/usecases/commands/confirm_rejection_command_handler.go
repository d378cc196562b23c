package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
)

// ConfirmRejectionCommandHandler leaves AwaitingReason by submitting the
// rejection.
//
// The flow is:
//  1. no entry or a blank reason: order.ErrMissingReason, nothing is sent
//  2. the transition is validated again with the recorded reason
//  3. on success the command sink is called and the entry is cleared
//
// A refusal in step 2 also clears the entry, since a conflict or a status
// change made the rejection impossible. A command sink failure keeps it so
// the vendor can retry.
type ConfirmRejectionCommandHandler struct {
	engine transitionEngine
}

func NewConfirmRejectionCommandHandler(deps TransitionDeps) ConfirmRejectionCommandHandler {
	return ConfirmRejectionCommandHandler{
		engine: newTransitionEngine(deps),
	}
}

func (h ConfirmRejectionCommandHandler) Handle(ctx context.Context, cmd ConfirmRejectionCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	workflow := h.engine.deps.Workflow
	pending, found, err := workflow.Get(ctx, cmd.ItemID())
	if err != nil {
		return TransitionResult{}, err
	}
	if !found || !pending.OrderID.IsEqual(cmd.OrderID()) {
		return TransitionResult{}, order.ErrMissingReason
	}

	reason, err := pending.ConfirmableReason()
	if err != nil {
		return TransitionResult{}, err
	}

	result, err := h.engine.submit(ctx, cmd.OrderID(), cmd.ItemID(), order.ItemRejected, reason)
	var refusal *order.TransitionRefusedError
	if errors.As(err, &refusal) && !errors.Is(err, ErrCommandSinkFailure) {
		if clearErr := workflow.Delete(ctx, cmd.ItemID()); clearErr != nil {
			return TransitionResult{}, errors.Join(err, clearErr)
		}
	}
	if err != nil {
		return TransitionResult{}, err
	}

	// A rejected item asked to be rejected again is a no-op; nothing is
	// left to confirm either way.
	if result.Outcome == OutcomeUnchanged {
		if err = workflow.Delete(ctx, cmd.ItemID()); err != nil {
			return TransitionResult{}, err
		}
	}

	return result, nil
}
