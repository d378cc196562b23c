package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeItemStatusesCommandIsNotConstructed = errors.New(
	"ChangeItemStatusesCommand must be created via NewChangeItemStatusesCommand constructor",
)

// ItemStatusChange is one entry of a bulk request.
type ItemStatusChange struct {
	ItemID kernel.UUID
	Status order.ItemStatus
	Reason string
}

// ChangeItemStatusesCommand requests transitions for several items of the
// same order. Each item is handled independently.
type ChangeItemStatusesCommand struct {
	orderID kernel.UUID
	changes []ItemStatusChange

	guard guard.ConstructorGuard
}

// NewChangeItemStatusesCommand requires at least one change and at most one
// change per item.
func NewChangeItemStatusesCommand(orderID kernel.UUID, changes []ItemStatusChange) (ChangeItemStatusesCommand, error) {
	cmd := ChangeItemStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&cmd.orderID, orderID),
		cmd.setChanges(changes),
	); err != nil {
		return ChangeItemStatusesCommand{}, err
	}

	return cmd, nil
}

func (c ChangeItemStatusesCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemStatusesCommandIsNotConstructed)
}

func (c ChangeItemStatusesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Changes returns a copy of the requested changes.
func (c ChangeItemStatusesCommand) Changes() []ItemStatusChange {
	changes := make([]ItemStatusChange, len(c.changes))
	copy(changes, c.changes)
	return changes
}

func (c *ChangeItemStatusesCommand) setChanges(changes []ItemStatusChange) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}

	seen := make(map[kernel.UUID]struct{}, len(changes))
	for i, change := range changes {
		if err := errors.Join(change.ItemID.Validate(), change.Status.Validate()); err != nil {
			return fmt.Errorf("change %d: %w", i, err)
		}
		if _, dup := seen[change.ItemID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"changes are invalid",
				fmt.Errorf("item %s appears more than once", change.ItemID),
			)
		}
		seen[change.ItemID] = struct{}{}
	}

	c.changes = make([]ItemStatusChange, len(changes))
	copy(c.changes, changes)
	return nil
}
