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

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Requests holds the customer requests that take precedence over vendor
// fulfillment progress. The presence of a request timestamp is what freezes
// the items; the rejection reasons only record the review outcome.
type Requests struct {
	CancellationRequestedAt     *time.Time
	CancellationRejectionReason string
	ReturnRequestedAt           *time.Time
	ReturnRejectionReason       string
}

func (r Requests) HasCancellation() bool {
	return r.CancellationRequestedAt != nil
}

func (r Requests) HasReturn() bool {
	return r.ReturnRequestedAt != nil
}

func (r Requests) clone() Requests {
	return Requests{
		CancellationRequestedAt:     copyTime(r.CancellationRequestedAt),
		CancellationRejectionReason: r.CancellationRejectionReason,
		ReturnRequestedAt:           copyTime(r.ReturnRequestedAt),
		ReturnRejectionReason:       r.ReturnRejectionReason,
	}
}

// Order is the aggregate root of the fulfillment model. It owns its items
// and is the only place where item statuses change.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have at least one item, with unique item identifiers
//   - Item transitions follow the ItemStatus table
//   - A cancellation request, an order return request or an item return
//     request freezes the affected items for vendor transitions
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id       kernel.UUID
	status   Status
	items    []*Item
	requests Requests

	// events recorded since the aggregate was loaded or created
	events []DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places a new order. Every item must be freshly created with
// NewItem, so the order starts with all items pending.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - items: At least one pending item
//
// Returns:
//   - *Order: The created order in StatusPending
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	price, _ := kernel.MoneyFromString("99.00", "ZAR")
//	item, _ := order.NewItem(kernel.NewUUID(), "prod-1", "", 1, price)
//	o, err := order.NewOrder(kernel.NewUUID(), []*order.Item{item})
func NewOrder(id kernel.UUID, items []*Item) (*Order, error) {
	o := &Order{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(o.setID(id), o.setItems(items, true)); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage or from the remote order API.
//
// The order level status is informational here and is not validated, so a
// status introduced upstream does not make the order unreadable.
func RestoreOrder(id kernel.UUID, status Status, items []*Item, requests Requests) (*Order, error) {
	o := &Order{
		status:   status,
		requests: requests.clone(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(o.setID(id), o.setItems(items, false)); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns the items in placement order. The slice is a copy; the items
// are shared and can only be changed through the order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Requests returns a copy of the customer request metadata.
func (o *Order) Requests() Requests {
	return o.requests.clone()
}

// Item returns the item with the given ID or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID)
}

// HasItem reports whether the order owns an item with the given ID.
func (o *Order) HasItem(itemID kernel.UUID) bool {
	_, err := o.Item(itemID)
	return err == nil
}

// Conflict returns the request conflict that freezes item, ConflictNone if
// the item is editable. Checks run in precedence order: order cancellation,
// order return, item return.
func (o *Order) Conflict(item *Item) ConflictKind {
	switch {
	case o.requests.HasCancellation():
		return ConflictCancellationPending
	case o.requests.HasReturn():
		return ConflictOrderReturnPending
	case item != nil && item.HasReturnRequest():
		return ConflictItemReturnPending
	default:
		return ConflictNone
	}
}

// CheckItemTransition decides whether item may move to the requested status.
//
// The checks run in this order:
//  1. order cancellation requested: refused with ConflictCancellationPending
//  2. order return requested: refused with ConflictOrderReturnPending
//  3. item return requested: refused with ConflictItemReturnPending
//  4. requested is the current status: nil, whatever the reason
//  5. requested is Rejected: refused unless the item is pending, then
//     ErrReasonRequired when the reason is blank
//  6. requested is outside the transition table: refused with ConflictInvalidTransition
//
// Returns:
//   - nil if the transition may be submitted
//   - ErrReasonRequired if only the reason is missing
//   - *TransitionRefusedError otherwise
//
// This method has no side effects.
func (o *Order) CheckItemTransition(item *Item, requested ItemStatus, reason string) error {
	if conflict := o.Conflict(item); conflict != ConflictNone {
		return NewTransitionRefusedError(conflict, item.id, item.status, requested)
	}

	if requested == item.status {
		return nil
	}

	if requested == ItemRejected {
		if item.status != ItemPending {
			return NewTransitionRefusedError(ConflictInvalidTransition, item.id, item.status, requested)
		}
		if strings.TrimSpace(reason) == "" {
			return ErrReasonRequired
		}
		return nil
	}

	if !item.status.CanTransitionTo(requested) {
		return NewTransitionRefusedError(ConflictInvalidTransition, item.id, item.status, requested)
	}

	return nil
}

// ChangeItemStatus moves an item to the requested status.
//
// This method enforces the same rules as CheckItemTransition. Requesting the
// current status is a no-op: it succeeds and records nothing.
//
// Parameters:
//   - itemID: The item to change
//   - to: The requested status (must be a declared status)
//   - reason: Rejection reason, required when to is Rejected and ignored otherwise
//
// Returns:
//   - nil on success
//   - ObjectNotFoundError if the item does not belong to the order
//   - ErrReasonRequired or *TransitionRefusedError as described above
//
// Example:
//
//	if err := o.ChangeItemStatus(itemID, order.ItemRejected, "out_of_stock"); err != nil {
//	    return err
//	}
//
// A successful change records an ItemStatusChanged event.
func (o *Order) ChangeItemStatus(itemID kernel.UUID, to ItemStatus, reason string) error {
	if err := to.Validate(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err := o.CheckItemTransition(item, to, reason); err != nil {
		return err
	}

	from := item.status
	if from == to {
		return nil
	}

	item.changeStatus(to, reason)
	o.raise(ItemStatusChanged{
		Order:  o.id,
		ItemID: item.id,
		From:   from,
		To:     to,
		Reason: item.rejectionReason,
		At:     time.Now().UTC(),
	})
	return nil
}

// RequestCancellation records a customer cancellation request. From now on
// every item is frozen for vendor transitions.
//
// Returns an error if the order already shipped, is closed, or already has a
// cancellation request.
func (o *Order) RequestCancellation(at time.Time) error {
	if err := validateRequestTime(at); err != nil {
		return err
	}
	if err := o.status.ValidateCancellationRequest(); err != nil {
		return err
	}
	if o.requests.HasCancellation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellation request is invalid",
			fmt.Errorf("cancellation for order %s was already requested", o.id),
		)
	}

	at = at.UTC()
	o.requests.CancellationRequestedAt = &at
	o.raise(CancellationRequested{Order: o.id, At: at})
	return nil
}

// RequestReturn records a customer return request for the whole order.
func (o *Order) RequestReturn(at time.Time) error {
	if err := validateRequestTime(at); err != nil {
		return err
	}
	if err := o.status.ValidateReturnRequest(); err != nil {
		return err
	}
	if o.requests.HasReturn() {
		return errs.NewValueIsInvalidErrorWithCause(
			"return request is invalid",
			fmt.Errorf("return for order %s was already requested", o.id),
		)
	}

	at = at.UTC()
	o.requests.ReturnRequestedAt = &at
	o.raise(ReturnRequested{Order: o.id, At: at})
	return nil
}

// RequestItemReturn records a customer return request for a single item.
func (o *Order) RequestItemReturn(itemID kernel.UUID, at time.Time) error {
	if err := validateRequestTime(at); err != nil {
		return err
	}
	if err := o.status.ValidateReturnRequest(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	at = at.UTC()
	if err := item.requestReturn(at); err != nil {
		return err
	}

	o.raise(ItemReturnRequested{Order: o.id, ItemID: item.id, At: at})
	return nil
}

// RejectCancellation records why the vendor declined the cancellation
// request. The request timestamp stays, so the items remain frozen.
func (o *Order) RejectCancellation(reason string) error {
	if !o.requests.HasCancellation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellation review is invalid",
			fmt.Errorf("order %s has no cancellation request", o.id),
		)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation rejection reason")
	}
	o.requests.CancellationRejectionReason = reason
	return nil
}

// RejectReturn records why the vendor declined the return request.
func (o *Order) RejectReturn(reason string) error {
	if !o.requests.HasReturn() {
		return errs.NewValueIsInvalidErrorWithCause(
			"return review is invalid",
			fmt.Errorf("order %s has no return request", o.id),
		)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("return rejection reason")
	}
	o.requests.ReturnRejectionReason = reason
	return nil
}

// Events returns the events recorded since the order was loaded.
func (o *Order) Events() []DomainEvent {
	events := make([]DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents drops recorded events once they have been published.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) raise(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []*Item, placing bool) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
		if _, dup := seen[item.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items are invalid", fmt.Errorf("item %s appears twice", item.id))
		}
		if placing && item.status != ItemPending {
			return errs.NewValueIsInvalidErrorWithCause(
				"items are invalid",
				fmt.Errorf("item %s is %s, new orders only hold pending items", item.id, item.status),
			)
		}
		seen[item.id] = struct{}{}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func validateRequestTime(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("request time")
	}
	return nil
}
