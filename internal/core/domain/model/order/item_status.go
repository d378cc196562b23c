package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ItemStatus is the fulfillment state of a single order line.
//
// Vendor transitions:
//
//	Pending ──┬──> Accepted ──> Processing ──> Picked
//	          │
//	          └──> Rejected
//
// Every state may also "transition" to itself, which is a no-op. Packed and
// Shipped are set by downstream actors and are read-only here.
type ItemStatus int

const (
	// ItemUnknown is the zero value and the result of parsing an unrecognized name.
	ItemUnknown ItemStatus = iota
	ItemPending
	ItemAccepted
	ItemRejected
	ItemProcessing
	ItemPicked
	ItemPacked
	ItemShipped
)

func getItemStatusNames() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:    "unknown",
		ItemPending:    "pending",
		ItemAccepted:   "accepted",
		ItemRejected:   "rejected",
		ItemProcessing: "processing",
		ItemPicked:     "picked",
		ItemPacked:     "packed",
		ItemShipped:    "shipped",
	}
}

// ParseItemStatus maps a wire name (case insensitive) to an ItemStatus.
// Unrecognized names yield ItemUnknown and an error.
func ParseItemStatus(name string) (ItemStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for status, n := range getItemStatusNames() {
		if status != ItemUnknown && n == normalized {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause(
		"item status is invalid",
		fmt.Errorf("%q is not a known item status", name),
	)
}

// String returns the lowercase wire name, "unknown" for out of range values.
func (s ItemStatus) String() string {
	if n, ok := getItemStatusNames()[s]; ok {
		return n
	}
	return "unknown"
}

// IsRecognized reports whether s is one of the declared statuses other than ItemUnknown.
func (s ItemStatus) IsRecognized() bool {
	return s >= ItemPending && s <= ItemShipped
}

// IsVendorManaged reports whether vendors drive s through the transition table.
func (s ItemStatus) IsVendorManaged() bool {
	switch s {
	case ItemPending, ItemAccepted, ItemRejected, ItemProcessing, ItemPicked:
		return true
	case ItemUnknown, ItemPacked, ItemShipped:
		return false
	default:
		return false
	}
}

// Validate checks that s can be requested as a transition target.
func (s ItemStatus) Validate() error {
	if !s.IsRecognized() {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status is invalid",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	return nil
}

// AllowedNextStatuses returns every status reachable from s in one vendor
// step, s itself included.
//
//	pending    -> pending, rejected, accepted
//	accepted   -> accepted, processing
//	processing -> processing, picked
//	picked     -> picked
//	rejected   -> rejected
//	otherwise  -> itself only
//
// The last row covers downstream states and values this build does not know;
// callers that care should check IsRecognized and report the mismatch.
func (s ItemStatus) AllowedNextStatuses() StatusSet {
	switch s {
	case ItemPending:
		return StatusSet{ItemPending, ItemRejected, ItemAccepted}
	case ItemAccepted:
		return StatusSet{ItemAccepted, ItemProcessing}
	case ItemProcessing:
		return StatusSet{ItemProcessing, ItemPicked}
	case ItemPicked:
		return StatusSet{ItemPicked}
	case ItemRejected:
		return StatusSet{ItemRejected}
	case ItemUnknown, ItemPacked, ItemShipped:
		return StatusSet{s}
	default:
		return StatusSet{s}
	}
}

// CanTransitionTo reports whether the table allows moving from s to target.
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	return s.AllowedNextStatuses().Contains(target)
}

// StatusSet is an ordered set of item statuses, current status first.
type StatusSet []ItemStatus

// Contains reports whether status is a member of the set.
func (set StatusSet) Contains(status ItemStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// Strings returns the wire names of the members.
func (set StatusSet) Strings() []string {
	names := make([]string, 0, len(set))
	for _, s := range set {
		names = append(names, s.String())
	}
	return names
}
