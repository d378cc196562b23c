package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog"
)

// Outcome tells the caller what a transition request led to.
type Outcome string

const (
	// OutcomeApplied means the command sink accepted the change.
	OutcomeApplied Outcome = "applied"
	// OutcomeUnchanged means the requested status was the current one.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeAwaitingReason means a rejection is waiting for a reason.
	OutcomeAwaitingReason Outcome = "awaiting_reason"
)

// TransitionResult carries the outcome and the order as it is afterwards:
// the order returned by the command sink when applied, the fetched order
// otherwise.
type TransitionResult struct {
	Outcome Outcome
	Order   *order.Order
}

// TransitionDeps bundles the collaborators of the transition engine.
type TransitionDeps struct {
	Store     ports.OrderStore
	Sink      ports.CommandSink
	Workflow  ports.RejectionWorkflowStore
	InFlight  ports.InFlightRegistry
	Validator services.TransitionValidator
	Observer  ports.TransitionObserver
	Logger    zerolog.Logger
}

// transitionEngine runs validate, send and reconcile for one item. It never
// changes the fetched order itself; the only source of new state is the
// order returned by the command sink.
type transitionEngine struct {
	deps TransitionDeps
	now  func() time.Time
}

func newTransitionEngine(deps TransitionDeps) transitionEngine {
	if deps.Observer == nil {
		deps.Observer = noopObserver{}
	}
	return transitionEngine{
		deps: deps,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (e transitionEngine) submit(
	ctx context.Context,
	orderID kernel.UUID,
	itemID kernel.UUID,
	requested order.ItemStatus,
	reason string,
) (TransitionResult, error) {
	log := e.deps.Logger.With().
		Str("order_id", orderID.String()).
		Str("item_id", itemID.String()).
		Str("requested", requested.String()).
		Logger()

	// Held from fetch to reconcile: one attempt per item at a time.
	token, err := e.deps.InFlight.Acquire(ctx, itemID)
	if errors.Is(err, ports.ErrItemBusy) {
		return TransitionResult{}, ErrTransitionInFlight
	}
	if err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		if releaseErr := e.deps.InFlight.Release(context.WithoutCancel(ctx), itemID, token); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("failed to release in-flight marker")
		}
	}()

	o, err := e.deps.Store.FetchOrder(ctx, orderID)
	if err != nil {
		return TransitionResult{}, err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return TransitionResult{}, err
	}

	// Choosing any other target abandons a rejection in progress.
	if requested != order.ItemRejected {
		if err = e.deps.Workflow.Delete(ctx, itemID); err != nil {
			return TransitionResult{}, err
		}
	}

	result := e.deps.Validator.Validate(o, item, requested, reason)
	e.deps.Observer.ObserveValidation(result.Verdict.String(), result.Conflict)

	switch result.Verdict {
	case services.VerdictRefused:
		log.Info().Str("conflict", result.Conflict.String()).Msg("transition refused")
		return TransitionResult{}, result.Err()
	case services.VerdictNeedsReason:
		if err = e.startRejection(ctx, o.ID(), itemID); err != nil {
			return TransitionResult{}, err
		}
		return TransitionResult{Outcome: OutcomeAwaitingReason, Order: o}, nil
	case services.VerdictValid:
	}

	if result.IsNoop() {
		return TransitionResult{Outcome: OutcomeUnchanged, Order: o}, nil
	}

	updated, err := e.send(ctx, itemID, requested, reason)
	if err != nil {
		log.Warn().Err(err).Msg("transition not applied")
		return TransitionResult{}, err
	}

	if requested == order.ItemRejected {
		if err = e.deps.Workflow.Delete(ctx, itemID); err != nil {
			log.Error().Err(err).Msg("failed to clear pending rejection")
		}
	}

	log.Info().Str("from", item.Status().String()).Msg("transition applied")
	return TransitionResult{Outcome: OutcomeApplied, Order: updated}, nil
}

// send issues the command sink call. The caller holds the item's in-flight
// marker.
func (e transitionEngine) send(
	ctx context.Context,
	itemID kernel.UUID,
	requested order.ItemStatus,
	reason string,
) (*order.Order, error) {
	if requested != order.ItemRejected {
		reason = ""
	}

	started := time.Now()
	updated, err := e.deps.Sink.ApplyItemStatus(ctx, itemID, requested, reason)
	e.deps.Observer.ObserveSinkCall(time.Since(started).Seconds(), err)
	if err != nil {
		return nil, NewCommandSinkFailureError(err)
	}

	return updated, nil
}

// startRejection enters AwaitingReason unless the item is already there, in
// which case a previously recorded candidate reason is kept.
func (e transitionEngine) startRejection(ctx context.Context, orderID, itemID kernel.UUID) error {
	_, found, err := e.deps.Workflow.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return e.deps.Workflow.Put(ctx, order.NewPendingRejection(orderID, itemID, e.now()))
}

type noopObserver struct{}

func (noopObserver) ObserveValidation(string, order.ConflictKind) {}
func (noopObserver) ObserveSinkCall(float64, error)               {}
