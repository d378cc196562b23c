package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates the order in "pending" status with every item pending.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Items now await the vendor's accept or reject decision
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the items and the order, then persists them in one
// transaction.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := cmd.Lines()
	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.ItemID, line.ProductRef, line.VariantRef, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.OrderID(), items)
	if err != nil {
		return err
	}

	return inOrderTx(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		return repo.Add(ctx, o)
	})
}
