package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitCustomerRequestCommandIsNotConstructed = errors.New(
	"SubmitCustomerRequestCommand must be created via NewSubmitCustomerRequestCommand constructor",
)

// RequestKind names a customer request that freezes vendor transitions.
type RequestKind string

const (
	RequestCancellation RequestKind = "cancellation"
	RequestOrderReturn  RequestKind = "return"
	RequestItemReturn   RequestKind = "item_return"
)

// ParseRequestKind accepts the wire names of the request kinds.
func ParseRequestKind(s string) (RequestKind, error) {
	switch kind := RequestKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case RequestCancellation, RequestOrderReturn, RequestItemReturn:
		return kind, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("request kind is invalid", fmt.Errorf("%q is not a request kind", s))
	}
}

// SubmitCustomerRequestCommand records a cancellation, an order return or an
// item return request. ItemID is only set for item returns.
type SubmitCustomerRequestCommand struct {
	orderID     kernel.UUID
	kind        RequestKind
	itemID      kernel.UUID
	requestedAt time.Time

	guard guard.ConstructorGuard
}

func NewSubmitCustomerRequestCommand(
	orderID kernel.UUID,
	kind RequestKind,
	itemID kernel.UUID,
	requestedAt time.Time,
) (SubmitCustomerRequestCommand, error) {
	cmd := SubmitCustomerRequestCommand{
		kind:        kind,
		requestedAt: requestedAt,
		guard:       guard.NewConstructorGuard(),
	}

	var kindErr error
	switch kind {
	case RequestItemReturn:
		kindErr = setID(&cmd.itemID, itemID)
	case RequestCancellation, RequestOrderReturn:
	default:
		kindErr = errs.NewValueIsInvalidErrorWithCause("request kind is invalid", fmt.Errorf("%q is not a request kind", kind))
	}

	var timeErr error
	if requestedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("requestedAt")
	}

	if err := errors.Join(setID(&cmd.orderID, orderID), kindErr, timeErr); err != nil {
		return SubmitCustomerRequestCommand{}, err
	}

	return cmd, nil
}

func (c SubmitCustomerRequestCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCustomerRequestCommandIsNotConstructed)
}

func (c SubmitCustomerRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitCustomerRequestCommand) Kind() RequestKind {
	return c.kind
}

// ItemID is the zero UUID unless Kind is RequestItemReturn.
func (c SubmitCustomerRequestCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c SubmitCustomerRequestCommand) RequestedAt() time.Time {
	return c.requestedAt
}
