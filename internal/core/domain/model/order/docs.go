// Package order provides the domain model of vendor side order fulfillment.
// It implements the Order aggregate root, its items and the item transition
// rules.
//
// The package includes:
//   - Order: The aggregate root that owns items and customer request metadata
//   - Item: One order line tracked independently through fulfillment
//   - ItemStatus: The item state machine and its transition table
//   - Status: The order level lifecycle, read for display and request checks
//   - ConflictKind and TransitionRefusedError: why a transition was refused
//   - PendingRejection: the AwaitingReason state of the rejection workflow
//   - RejectionReason: the closed set of rejection reasons
//   - DomainEvent: facts recorded by the aggregate and published after commit
//
// Key business rules:
//   - Items move forward only: pending -> accepted -> processing -> picked
//   - Rejection is reachable only from pending, needs a reason, and is final
//   - A cancellation request, an order return request or an item return
//     request freezes the affected items, whatever the review outcome
//   - Requesting the current status is a no-op
package order
