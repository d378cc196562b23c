package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelRejectionCommandIsNotConstructed = errors.New(
	"CancelRejectionCommand must be created via NewCancelRejectionCommand constructor",
)

// CancelRejectionCommand abandons a rejection awaiting a reason. The item
// status is not touched.
type CancelRejectionCommand struct {
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelRejectionCommand(orderID, itemID kernel.UUID) (CancelRejectionCommand, error) {
	cmd := CancelRejectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		setID(&cmd.itemID, itemID),
	); err != nil {
		return CancelRejectionCommand{}, err
	}

	return cmd, nil
}

func (c CancelRejectionCommand) Validate() error {
	return c.guard.Validate(ErrCancelRejectionCommandIsNotConstructed)
}

func (c CancelRejectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelRejectionCommand) ItemID() kernel.UUID {
	return c.itemID
}
