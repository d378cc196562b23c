package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectCustomerRequestCommandIsNotConstructed = errors.New(
	"RejectCustomerRequestCommand must be created via NewRejectCustomerRequestCommand constructor",
)

// RejectCustomerRequestCommand records that the vendor declined an order
// level cancellation or return request. Item returns are reviewed elsewhere.
type RejectCustomerRequestCommand struct {
	orderID kernel.UUID
	kind    RequestKind
	reason  string

	guard guard.ConstructorGuard
}

func NewRejectCustomerRequestCommand(orderID kernel.UUID, kind RequestKind, reason string) (RejectCustomerRequestCommand, error) {
	cmd := RejectCustomerRequestCommand{
		kind:   kind,
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	var kindErr error
	if kind != RequestCancellation && kind != RequestOrderReturn {
		kindErr = errs.NewValueIsInvalidErrorWithCause(
			"request kind is invalid",
			fmt.Errorf("%q requests cannot be rejected at order level", kind),
		)
	}

	var reasonErr error
	if cmd.reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(setID(&cmd.orderID, orderID), kindErr, reasonErr); err != nil {
		return RejectCustomerRequestCommand{}, err
	}

	return cmd, nil
}

func (c RejectCustomerRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectCustomerRequestCommandIsNotConstructed)
}

func (c RejectCustomerRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RejectCustomerRequestCommand) Kind() RequestKind {
	return c.kind
}

func (c RejectCustomerRequestCommand) Reason() string {
	return c.reason
}
