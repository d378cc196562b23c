package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the order-level lifecycle state.
//
// The order status is a superset of the item statuses: besides the
// fulfillment progression it carries the after-sales states produced by
// cancellations and returns.
//
//	Pending ──> Accepted ──> Processing ──> Packed ──> Shipped ──> Delivered
//	   │                                                              │
//	   ├──> Rejected                                                  └──> ReturnInProgress ──> Returned ──> Refunded
//	   └──> Cancelled
//
// This service never drives the order status itself; it is maintained by the
// order owner and read here for display and for the closed-order check.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly placed order.
	StatusPending

	// StatusAccepted indicates the vendor accepted at least one item.
	StatusAccepted

	// StatusProcessing indicates items are being prepared.
	StatusProcessing

	// StatusPacked indicates the parcel is ready for the carrier.
	StatusPacked

	// StatusShipped indicates the parcel left the vendor.
	StatusShipped

	// StatusDelivered indicates the customer received the parcel.
	StatusDelivered

	// StatusCancelled is final: the order was cancelled before shipping.
	StatusCancelled

	// StatusRejected is final: every item was rejected by the vendor.
	StatusRejected

	// StatusReturnInProgress indicates an accepted return is travelling back.
	StatusReturnInProgress

	// StatusReturned indicates the vendor received the returned goods.
	StatusReturned

	// StatusRefunded is final: the customer was refunded.
	StatusRefunded
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "unknown",
		StatusPending:          "pending",
		StatusAccepted:         "accepted",
		StatusProcessing:       "processing",
		StatusPacked:           "packed",
		StatusShipped:          "shipped",
		StatusDelivered:        "delivered",
		StatusCancelled:        "cancelled",
		StatusRejected:         "rejected",
		StatusReturnInProgress: "return_in_progress",
		StatusReturned:         "returned",
		StatusRefunded:         "refunded",
	}
}

// ParseStatus converts a wire name into a Status.
//
// Returns:
//   - the matching Status and nil
//   - StatusUnknown and an invalid value error for unrecognized names
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for status, n := range getStatusStrings() {
		if status != StatusUnknown && n == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known order status", name),
	)
}

// Validate checks if the Status value is valid.
//
// StatusUnknown (0) and any value outside the declared range are invalid.
// This method is used to ensure Status values restored from the database or
// the remote order API are usable.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusRefunded {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
//
// Example:
//
//	fmt.Println(o.Status()) // Output: "return_in_progress"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsClosed reports whether the order reached a final after-sales state.
//
// Closed orders:
//   - Cancelled
//   - Rejected
//   - Returned
//   - Refunded
//
// Customer requests are refused on closed orders.
func (s Status) IsClosed() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusReturned, StatusRefunded:
		return true
	default:
		return false
	}
}

// ValidateCancellationRequest checks that a customer may still ask to cancel.
//
// Cancellation is possible until the parcel ships:
//   - Pending, Accepted, Processing, Packed: allowed
//   - anything else: refused
func (s Status) ValidateCancellationRequest() error {
	switch s {
	case StatusPending, StatusAccepted, StatusProcessing, StatusPacked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to request cancellation", s.String()),
		)
	}
}

// ValidateReturnRequest checks that a customer may ask to return goods.
//
// Returns are possible once the parcel shipped:
//   - Shipped, Delivered: allowed
//   - anything else: refused
func (s Status) ValidateReturnRequest() error {
	switch s {
	case StatusShipped, StatusDelivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to request a return", s.String()),
		)
	}
}
