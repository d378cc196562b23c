package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// RejectCustomerRequestCommandHandler stores the review outcome. The request
// timestamp stays in place, so the items stay frozen.
type RejectCustomerRequestCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRejectCustomerRequestCommandHandler(uowFactory OrderUoWFactory) RejectCustomerRequestCommandHandler {
	return RejectCustomerRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RejectCustomerRequestCommandHandler) Handle(ctx context.Context, cmd RejectCustomerRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTx(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if cmd.Kind() == RequestCancellation {
			err = o.RejectCancellation(cmd.Reason())
		} else {
			err = o.RejectReturn(cmd.Reason())
		}
		if err != nil {
			return err
		}

		return repo.Update(ctx, o)
	})
}
