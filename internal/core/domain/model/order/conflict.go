package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// ConflictKind classifies why a vendor transition was refused.
//
// The first three kinds are request conflicts: a cancellation or return
// request exists and freezes the item regardless of the requested target.
// ConflictInvalidTransition means the target is not reachable from the
// current status.
type ConflictKind int

const (
	ConflictNone ConflictKind = iota
	ConflictCancellationPending
	ConflictOrderReturnPending
	ConflictItemReturnPending
	ConflictInvalidTransition
)

var (
	ErrCancellationPending = errors.New("order cancellation has been requested")
	ErrOrderReturnPending  = errors.New("order return has been requested")
	ErrItemReturnPending   = errors.New("item return has been requested")
	ErrInvalidTransition   = errors.New("transition is not allowed")

	// ErrReasonRequired signals that a rejection needs a reason before it can
	// be submitted. It is a control flow signal, not a failure.
	ErrReasonRequired = errors.New("rejection reason is required")
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictNone:
		return "none"
	case ConflictCancellationPending:
		return "cancellation_pending"
	case ConflictOrderReturnPending:
		return "order_return_pending"
	case ConflictItemReturnPending:
		return "item_return_pending"
	case ConflictInvalidTransition:
		return "invalid_transition"
	default:
		return "unknown"
	}
}

// IsRequestConflict reports whether k comes from a cancellation or return request.
func (k ConflictKind) IsRequestConflict() bool {
	switch k {
	case ConflictCancellationPending, ConflictOrderReturnPending, ConflictItemReturnPending:
		return true
	default:
		return false
	}
}

// Err returns the sentinel for k, nil for ConflictNone.
func (k ConflictKind) Err() error {
	switch k {
	case ConflictNone:
		return nil
	case ConflictCancellationPending:
		return ErrCancellationPending
	case ConflictOrderReturnPending:
		return ErrOrderReturnPending
	case ConflictItemReturnPending:
		return ErrItemReturnPending
	default:
		return ErrInvalidTransition
	}
}

// TransitionRefusedError describes a refused transition. It unwraps to the
// sentinel of its Conflict so callers can use errors.Is.
type TransitionRefusedError struct {
	Conflict ConflictKind
	ItemID   kernel.UUID
	From     ItemStatus
	To       ItemStatus
}

func NewTransitionRefusedError(conflict ConflictKind, itemID kernel.UUID, from, to ItemStatus) *TransitionRefusedError {
	return &TransitionRefusedError{
		Conflict: conflict,
		ItemID:   itemID,
		From:     from,
		To:       to,
	}
}

func (e *TransitionRefusedError) Error() string {
	if e.Conflict != ConflictInvalidTransition {
		return fmt.Sprintf("item %s is locked: %s", e.ItemID, e.Conflict.Err())
	}
	if e.To == ItemRejected {
		return fmt.Sprintf("item %s cannot be rejected: rejection only allowed from pending, current status is %s", e.ItemID, e.From)
	}
	return fmt.Sprintf("item %s cannot move from %s to %s", e.ItemID, e.From, e.To)
}

func (e *TransitionRefusedError) Unwrap() error {
	return e.Conflict.Err()
}
