package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// TransactionalCommandSink implements ports.CommandSink on top of the order
// repository, for deployments where this service owns the orders.
//
// The order row is locked while the change is applied, and the aggregate
// checks request conflicts again under that lock. A cancellation or return
// request committed after the caller validated, but before the lock was
// taken, therefore refuses the change instead of being overwritten.
type TransactionalCommandSink struct {
	uowFactory OrderUoWFactory
}

var _ ports.CommandSink = TransactionalCommandSink{}

func NewTransactionalCommandSink(uowFactory OrderUoWFactory) TransactionalCommandSink {
	return TransactionalCommandSink{
		uowFactory: uowFactory,
	}
}

// ApplyItemStatus changes the item and returns the order after commit.
// Domain events are published by the unit of work once committed.
func (s TransactionalCommandSink) ApplyItemStatus(
	ctx context.Context,
	itemID kernel.UUID,
	status order.ItemStatus,
	rejectionReason string,
) (*order.Order, error) {
	var changed *order.Order

	err := inOrderTx(ctx, s.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.GetByItemID(ctx, itemID)
		if err != nil {
			return err
		}

		if err = o.ChangeItemStatus(itemID, status, rejectionReason); err != nil {
			return err
		}

		if err = repo.Update(ctx, o); err != nil {
			return err
		}

		changed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return changed, nil
}
