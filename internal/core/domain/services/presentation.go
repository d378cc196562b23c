package services

import (
	"fulfillment/internal/core/domain/model/order"
)

// ConflictLabel returns a stable, user displayable label for kind. The
// labels are part of the API contract; do not reword them.
func ConflictLabel(kind order.ConflictKind) string {
	switch kind {
	case order.ConflictNone:
		return ""
	case order.ConflictCancellationPending:
		return "Cancellation requested"
	case order.ConflictOrderReturnPending:
		return "Return requested"
	case order.ConflictItemReturnPending:
		return "Item return requested"
	case order.ConflictInvalidTransition:
		return "Status change not allowed"
	default:
		return "Unavailable"
	}
}

// IsEditable reports whether no cancellation or return request freezes item.
func IsEditable(o *order.Order, item *order.Item) bool {
	return o.Conflict(item) == order.ConflictNone
}
