package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeItemStatusCommandIsNotConstructed = errors.New(
	"ChangeItemStatusCommand must be created via NewChangeItemStatusCommand constructor",
)

// ChangeItemStatusCommand represents a vendor request to move one item to a
// new status. The reason is only used when the target is rejected.
//
// Example:
//
//	cmd, err := NewChangeItemStatusCommand(orderID, itemID, order.ItemAccepted, "")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil && result.Outcome == OutcomeAwaitingReason {
//	    // ask the vendor for a rejection reason
//	}
type ChangeItemStatusCommand struct {
	orderID kernel.UUID
	itemID  kernel.UUID
	status  order.ItemStatus
	reason  string

	guard guard.ConstructorGuard
}

// NewChangeItemStatusCommand validates identifiers and the requested status.
// Whether the transition is legal is decided by the handler.
func NewChangeItemStatusCommand(
	orderID kernel.UUID,
	itemID kernel.UUID,
	status order.ItemStatus,
	reason string,
) (ChangeItemStatusCommand, error) {
	cmd := ChangeItemStatusCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		setID(&cmd.itemID, itemID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeItemStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemStatusCommandIsNotConstructed)
}

func (c ChangeItemStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeItemStatusCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c ChangeItemStatusCommand) Status() order.ItemStatus {
	return c.status
}

func (c ChangeItemStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeItemStatusCommand) setStatus(status order.ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func setID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
