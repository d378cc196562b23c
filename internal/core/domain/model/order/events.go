package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Event names as they appear on the wire.
const (
	EventItemStatusChanged     = "order.item_status_changed"
	EventCancellationRequested = "order.cancellation_requested"
	EventReturnRequested       = "order.return_requested"
	EventItemReturnRequested   = "order.item_return_requested"
)

// DomainEvent is a fact recorded by the Order aggregate. Events are collected
// on the aggregate and published by the persistence layer after commit.
type DomainEvent interface {
	EventName() string
	OrderID() kernel.UUID
	OccurredAt() time.Time
}

type ItemStatusChanged struct {
	Order  kernel.UUID
	ItemID kernel.UUID
	From   ItemStatus
	To     ItemStatus
	Reason string
	At     time.Time
}

func (e ItemStatusChanged) EventName() string     { return EventItemStatusChanged }
func (e ItemStatusChanged) OrderID() kernel.UUID  { return e.Order }
func (e ItemStatusChanged) OccurredAt() time.Time { return e.At }

type CancellationRequested struct {
	Order kernel.UUID
	At    time.Time
}

func (e CancellationRequested) EventName() string     { return EventCancellationRequested }
func (e CancellationRequested) OrderID() kernel.UUID  { return e.Order }
func (e CancellationRequested) OccurredAt() time.Time { return e.At }

type ReturnRequested struct {
	Order kernel.UUID
	At    time.Time
}

func (e ReturnRequested) EventName() string     { return EventReturnRequested }
func (e ReturnRequested) OrderID() kernel.UUID  { return e.Order }
func (e ReturnRequested) OccurredAt() time.Time { return e.At }

type ItemReturnRequested struct {
	Order  kernel.UUID
	ItemID kernel.UUID
	At     time.Time
}

func (e ItemReturnRequested) EventName() string     { return EventItemReturnRequested }
func (e ItemReturnRequested) OrderID() kernel.UUID  { return e.Order }
func (e ItemReturnRequested) OccurredAt() time.Time { return e.At }
