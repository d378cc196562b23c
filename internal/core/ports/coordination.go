package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrItemBusy is returned by InFlightRegistry.Acquire when another request
// for the same item is still in flight.
var ErrItemBusy = errors.New("item already has a request in flight")

// InFlightRegistry serializes transition attempts per item. Different items
// never block each other.
//
// Example:
//
//	token, err := registry.Acquire(ctx, itemID)
//	if err != nil {
//	    return err
//	}
//	defer registry.Release(ctx, itemID, token)
type InFlightRegistry interface {
	// Acquire marks the item as in flight and returns a token identifying
	// the holder. Returns ErrItemBusy if the item is already marked.
	Acquire(ctx context.Context, itemID kernel.UUID) (string, error)

	// Release clears the marker if it is still held by token. Releasing a
	// marker that expired or was taken over is a no-op.
	Release(ctx context.Context, itemID kernel.UUID, token string) error
}

// RejectionWorkflowStore keeps one PendingRejection per item awaiting a reason.
type RejectionWorkflowStore interface {
	// Get returns the pending rejection, or false if the item is idle.
	Get(ctx context.Context, itemID kernel.UUID) (order.PendingRejection, bool, error)

	// Put creates or replaces the entry for the item.
	Put(ctx context.Context, pending order.PendingRejection) error

	// Delete clears the entry. Deleting an idle item is a no-op.
	Delete(ctx context.Context, itemID kernel.UUID) error
}
