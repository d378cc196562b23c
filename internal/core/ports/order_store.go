// Package ports defines the contracts between the fulfillment core and its
// infrastructure: the order store and command sink the transition engine
// consumes, the coordination stores that replace ambient UI state, and the
// persistence and publishing interfaces used by the postgres backend.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderStore supplies the current order graph.
type OrderStore interface {
	// FetchOrder returns the order with all items and request metadata.
	// Returns an errs.ObjectNotFoundError if the order does not exist.
	FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error)
}

// CommandSink persists an approved item status change. It is the only
// mutating call the transition engine makes.
//
// Implementations return the order as it is after the change so callers can
// refresh local state without a second fetch. On failure the item status is
// unchanged.
type CommandSink interface {
	ApplyItemStatus(ctx context.Context, itemID kernel.UUID, status order.ItemStatus, rejectionReason string) (*order.Order, error)
}
