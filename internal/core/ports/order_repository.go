package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing and retrieving orders together with their
// items and customer request metadata.
type OrderRepository interface {
	// Add persists a newly placed order aggregate with all of its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Item status changes recorded on the aggregate are appended to the
	// transition history in the same transaction.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an errs.ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the current
	// transaction ends. Used by the command sink so a customer request that
	// lands concurrently is observed before the transition is applied.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByItemID retrieves the order owning the given item, locking it the
	// same way as GetForUpdate.
	GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error)
}
