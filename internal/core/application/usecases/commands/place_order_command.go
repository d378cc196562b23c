package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrProductRefIsRequired = errors.New("product reference is required")
	ErrQuantityIsInvalid    = errors.New("quantity must be greater than 0")
)

// PlaceOrderLine describes one item of a new order.
type PlaceOrderLine struct {
	ItemID     kernel.UUID
	ProductRef string
	VariantRef string
	Quantity   int
	UnitPrice  kernel.Money
}

// PlaceOrderCommand represents a new marketplace order reaching the vendor.
// Every line becomes a pending item.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("149.99", "ZAR")
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), []PlaceOrderLine{
//	    {ItemID: kernel.NewUUID(), ProductRef: "prod-17", Quantity: 2, UnitPrice: price},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []PlaceOrderLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the order ID and every line.
// Returns the joined errors of all invalid fields.
func NewPlaceOrderCommand(orderID kernel.UUID, lines []PlaceOrderLine) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the order lines.
func (c PlaceOrderCommand) Lines() []PlaceOrderLine {
	lines := make([]PlaceOrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []PlaceOrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	var lineErrs []error
	for i, line := range lines {
		var problems []error
		if err := line.ItemID.Validate(); err != nil {
			problems = append(problems, err)
		}
		if strings.TrimSpace(line.ProductRef) == "" {
			problems = append(problems, ErrProductRefIsRequired)
		}
		if line.Quantity <= 0 {
			problems = append(problems, ErrQuantityIsInvalid)
		}
		if err := line.UnitPrice.Validate(); err != nil {
			problems = append(problems, err)
		}
		if len(problems) > 0 {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, errors.Join(problems...)))
		}
	}
	if len(lineErrs) > 0 {
		return errors.Join(lineErrs...)
	}

	c.lines = make([]PlaceOrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
