package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSelectRejectionReasonCommandIsNotConstructed = errors.New(
	"SelectRejectionReasonCommand must be created via NewSelectRejectionReasonCommand constructor",
)

// SelectRejectionReasonCommand records the candidate reason of a rejection
// that is awaiting one. The reason is opaque here; the API restricts it to
// the closed RejectionReason set.
type SelectRejectionReasonCommand struct {
	orderID kernel.UUID
	itemID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewSelectRejectionReasonCommand(orderID, itemID kernel.UUID, reason string) (SelectRejectionReasonCommand, error) {
	cmd := SelectRejectionReasonCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		setID(&cmd.itemID, itemID),
		cmd.setReason(reason),
	); err != nil {
		return SelectRejectionReasonCommand{}, err
	}

	return cmd, nil
}

func (c SelectRejectionReasonCommand) Validate() error {
	return c.guard.Validate(ErrSelectRejectionReasonCommandIsNotConstructed)
}

func (c SelectRejectionReasonCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SelectRejectionReasonCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c SelectRejectionReasonCommand) Reason() string {
	return c.reason
}

func (c *SelectRejectionReasonCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	c.reason = reason
	return nil
}
