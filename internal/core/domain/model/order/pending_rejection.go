package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrMissingReason is returned when a rejection is confirmed without a reason.
	ErrMissingReason = errors.New("rejection cannot be confirmed without a reason")

	// ErrNoRejectionInProgress is returned when a reason is selected for an
	// item that is not awaiting one.
	ErrNoRejectionInProgress = errors.New("no rejection is awaiting a reason for this item")
)

// PendingRejection is the AwaitingReason state of the rejection workflow:
// the vendor asked to reject an item and the service is collecting a reason.
//
//	Idle ──(reject without reason)──> AwaitingReason ──(confirm)──> submitted
//	  ^                                     │
//	  └──────────────(cancel)───────────────┘
//
// An item has at most one entry. No entry means Idle.
type PendingRejection struct {
	OrderID   kernel.UUID
	ItemID    kernel.UUID
	Reason    string
	StartedAt time.Time
}

func NewPendingRejection(orderID, itemID kernel.UUID, startedAt time.Time) PendingRejection {
	return PendingRejection{
		OrderID:   orderID,
		ItemID:    itemID,
		StartedAt: startedAt,
	}
}

// WithReason returns a copy holding the candidate reason.
func (p PendingRejection) WithReason(reason string) PendingRejection {
	p.Reason = strings.TrimSpace(reason)
	return p
}

// HasReason reports whether a non-blank candidate reason was recorded.
func (p PendingRejection) HasReason() bool {
	return strings.TrimSpace(p.Reason) != ""
}

// ConfirmableReason returns the recorded reason, or ErrMissingReason.
func (p PendingRejection) ConfirmableReason() (string, error) {
	if !p.HasReason() {
		return "", ErrMissingReason
	}
	return p.Reason, nil
}
