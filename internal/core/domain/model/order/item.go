package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item bypassed NewItem and RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one line of an order, tracked independently through fulfillment.
//
// Item follows these invariants:
//   - Must have a valid unique identifier
//   - Quantity must be positive
//   - Unit price must be a constructed Money value
//   - Rejection reason is non-empty if and only if the status is Rejected
//
// Items are only mutated through their Order, which checks the transition
// rules and the request conflicts first.
type Item struct {
	id                kernel.UUID
	status            ItemStatus
	statusName        string
	rejectionReason   string
	returnRequestedAt *time.Time
	quantity          int
	unitPrice         kernel.Money
	productRef        string
	variantRef        string
	guard             guard.ConstructorGuard
}

// ItemState carries the persisted or remote representation of an item for
// RestoreItem.
type ItemState struct {
	ID     kernel.UUID
	Status ItemStatus
	// StatusName is the status as the source spelled it. It is only kept
	// when Status is not recognized.
	StatusName        string
	RejectionReason   string
	ReturnRequestedAt *time.Time
	Quantity          int
	UnitPrice         kernel.Money
	ProductRef        string
	VariantRef        string
}

// NewItem creates a pending item for a newly placed order.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("149.99", "ZAR")
//	item, err := order.NewItem(kernel.NewUUID(), "prod-17", "size-m", 2, price)
func NewItem(id kernel.UUID, productRef, variantRef string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		status:     ItemPending,
		productRef: productRef,
		variantRef: variantRef,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds an item from storage or from the remote order API.
//
// Unrecognized statuses are kept as they are: the transition table locks
// them to themselves and the validator reports the mismatch.
func RestoreItem(state ItemState) (*Item, error) {
	item := &Item{
		status:     state.Status,
		productRef: state.ProductRef,
		variantRef: state.VariantRef,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(state.ID),
		item.setQuantity(state.Quantity),
		item.setUnitPrice(state.UnitPrice),
		item.setRejectionReason(state.Status, state.RejectionReason),
	); err != nil {
		return nil, err
	}
	item.returnRequestedAt = copyTime(state.ReturnRequestedAt)
	if !state.Status.IsRecognized() {
		item.statusName = state.StatusName
	}

	return item, nil
}

// Validate returns ErrItemIsNotConstructed for zero values.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Status() ItemStatus {
	return i.status
}

// StatusName is the wire name of the status. For an unrecognized status it
// is the name the source sent, when there was one.
func (i *Item) StatusName() string {
	if !i.status.IsRecognized() && i.statusName != "" {
		return i.statusName
	}
	return i.status.String()
}

// RejectionReason is empty unless the item is rejected.
func (i *Item) RejectionReason() string {
	return i.rejectionReason
}

// ReturnRequestedAt returns a copy of the item return request time, nil if
// no return was requested.
func (i *Item) ReturnRequestedAt() *time.Time {
	return copyTime(i.returnRequestedAt)
}

// HasReturnRequest reports whether an item level return exists, whatever
// its review outcome.
func (i *Item) HasReturnRequest() bool {
	return i.returnRequestedAt != nil
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal is unit price times quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *Item) ProductRef() string {
	return i.productRef
}

func (i *Item) VariantRef() string {
	return i.variantRef
}

// State exports the item for persistence and transport adapters.
func (i *Item) State() ItemState {
	return ItemState{
		ID:                i.id,
		Status:            i.status,
		StatusName:        i.statusName,
		RejectionReason:   i.rejectionReason,
		ReturnRequestedAt: copyTime(i.returnRequestedAt),
		Quantity:          i.quantity,
		UnitPrice:         i.unitPrice,
		ProductRef:        i.productRef,
		VariantRef:        i.variantRef,
	}
}

// changeStatus assumes the order already checked conflicts and the table.
func (i *Item) changeStatus(to ItemStatus, reason string) {
	i.status = to
	if to == ItemRejected {
		i.rejectionReason = strings.TrimSpace(reason)
		return
	}
	i.rejectionReason = ""
}

func (i *Item) requestReturn(at time.Time) error {
	if i.returnRequestedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"item return is invalid",
			fmt.Errorf("return for item %s was already requested at %s", i.id, i.returnRequestedAt.Format(time.RFC3339)),
		)
	}
	i.returnRequestedAt = &at
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setRejectionReason(status ItemStatus, reason string) error {
	reason = strings.TrimSpace(reason)
	switch {
	case status == ItemRejected && reason == "":
		return errs.NewValueIsInvalidErrorWithCause("rejection reason is invalid", errors.New("rejected item has no reason"))
	case status != ItemRejected && reason != "":
		return errs.NewValueIsInvalidErrorWithCause(
			"rejection reason is invalid",
			fmt.Errorf("item in status %s cannot carry a rejection reason", status),
		)
	}
	i.rejectionReason = reason
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
