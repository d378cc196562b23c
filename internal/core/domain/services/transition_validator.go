package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// Verdict is the outcome class of a validation.
type Verdict int

const (
	// VerdictValid means the transition may be sent to the command sink.
	VerdictValid Verdict = iota
	// VerdictNeedsReason means the rejection is legal but a reason must be
	// collected first.
	VerdictNeedsReason
	// VerdictRefused means the transition must not be sent.
	VerdictRefused
)

func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictNeedsReason:
		return "needs_reason"
	case VerdictRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// ValidationResult is the decision for one (item, requested status) pair.
type ValidationResult struct {
	Verdict   Verdict
	Conflict  order.ConflictKind
	From      order.ItemStatus
	Requested order.ItemStatus
	err       error
}

func (r ValidationResult) IsValid() bool {
	return r.Verdict == VerdictValid
}

func (r ValidationResult) NeedsReason() bool {
	return r.Verdict == VerdictNeedsReason
}

// IsNoop reports a valid request for the item's current status.
func (r ValidationResult) IsNoop() bool {
	return r.IsValid() && r.From == r.Requested
}

// Err returns nil for a valid result, order.ErrReasonRequired when a reason
// is needed, and a *order.TransitionRefusedError otherwise.
func (r ValidationResult) Err() error {
	return r.err
}

// TransitionValidator is the guard of the item state machine. The transition
// table proposes next states; cancellation and return requests freeze the
// machine irrespective of the table.
//
// Example usage:
//
//	validator := services.NewTransitionValidator(log)
//	result := validator.Validate(o, item, order.ItemRejected, "")
//	if result.NeedsReason() {
//	    // collect a reason, then resubmit
//	}
type TransitionValidator struct {
	logger zerolog.Logger
}

func NewTransitionValidator(logger zerolog.Logger) TransitionValidator {
	return TransitionValidator{
		logger: logger.With().Str("component", "transition-validator").Logger(),
	}
}

// Validate decides whether item may move to requested.
//
// Parameters:
//   - o: The order owning the item, with its request metadata
//   - item: The item to change
//   - requested: The target status
//   - reason: Rejection reason, only looked at when requested is Rejected
//
// Returns a ValidationResult. Refusals carry the ConflictKind: request
// conflicts first (cancellation, order return, item return), then
// ConflictInvalidTransition.
//
// Items whose current status this build does not recognize are locked by the
// table's default row; the validator logs a warning for them, since they point
// at a data or version mismatch with the order store.
func (v TransitionValidator) Validate(o *order.Order, item *order.Item, requested order.ItemStatus, reason string) ValidationResult {
	result := ValidationResult{
		From:      item.Status(),
		Requested: requested,
	}

	if !item.Status().IsRecognized() {
		v.logger.Warn().
			Str("order_id", o.ID().String()).
			Str("item_id", item.ID().String()).
			Str("status", item.StatusName()).
			Int("status_code", int(item.Status())).
			Msg("item has an unrecognized status, transitions are locked")
	}

	if conflict := o.Conflict(item); conflict == order.ConflictNone && !requested.IsRecognized() {
		return refused(result, order.NewTransitionRefusedError(order.ConflictInvalidTransition, item.ID(), item.Status(), requested))
	}

	err := o.CheckItemTransition(item, requested, reason)
	switch {
	case err == nil:
		result.Verdict = VerdictValid
		return result
	case errors.Is(err, order.ErrReasonRequired):
		result.Verdict = VerdictNeedsReason
		result.err = err
		return result
	}

	var refusal *order.TransitionRefusedError
	if errors.As(err, &refusal) {
		return refused(result, refusal)
	}

	// CheckItemTransition only returns the errors handled above.
	return refused(result, order.NewTransitionRefusedError(order.ConflictInvalidTransition, item.ID(), item.Status(), requested))
}

func refused(result ValidationResult, refusal *order.TransitionRefusedError) ValidationResult {
	result.Verdict = VerdictRefused
	result.Conflict = refusal.Conflict
	result.err = refusal
	return result
}
