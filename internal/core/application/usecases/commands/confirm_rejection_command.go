package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmRejectionCommandIsNotConstructed = errors.New(
	"ConfirmRejectionCommand must be created via NewConfirmRejectionCommand constructor",
)

// ConfirmRejectionCommand submits a rejection with the reason recorded by
// SelectRejectionReasonCommand.
type ConfirmRejectionCommand struct {
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmRejectionCommand(orderID, itemID kernel.UUID) (ConfirmRejectionCommand, error) {
	cmd := ConfirmRejectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		setID(&cmd.itemID, itemID),
	); err != nil {
		return ConfirmRejectionCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmRejectionCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRejectionCommandIsNotConstructed)
}

func (c ConfirmRejectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmRejectionCommand) ItemID() kernel.UUID {
	return c.itemID
}
