package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SubmitCustomerRequestCommandHandler records a customer request on the
// order. From the commit on, the affected items refuse vendor transitions,
// including transitions already validated by a concurrent caller.
type SubmitCustomerRequestCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSubmitCustomerRequestCommandHandler(uowFactory OrderUoWFactory) SubmitCustomerRequestCommandHandler {
	return SubmitCustomerRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle locks the order, records the request and persists it. The order
// records a domain event that is published after commit.
func (h SubmitCustomerRequestCommandHandler) Handle(ctx context.Context, cmd SubmitCustomerRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTx(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = h.apply(o, cmd); err != nil {
			return err
		}

		return repo.Update(ctx, o)
	})
}

func (h SubmitCustomerRequestCommandHandler) apply(o *order.Order, cmd SubmitCustomerRequestCommand) error {
	switch cmd.Kind() {
	case RequestCancellation:
		return o.RequestCancellation(cmd.RequestedAt())
	case RequestOrderReturn:
		return o.RequestReturn(cmd.RequestedAt())
	default:
		return o.RequestItemReturn(cmd.ItemID(), cmd.RequestedAt())
	}
}
