package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// RejectionReason is the closed set of reasons a vendor may give when
// rejecting an item. The transition rules only require a non-empty string;
// the closed set is enforced at the API boundary for auditability.
type RejectionReason string

const (
	ReasonOutOfStock          RejectionReason = "out_of_stock"
	ReasonProductDiscontinued RejectionReason = "product_discontinued"
	ReasonQualityIssue        RejectionReason = "quality_issue"
	ReasonManufacturingDelay  RejectionReason = "manufacturing_delay"
	ReasonSupplierIssue       RejectionReason = "supplier_issue"
	ReasonOther               RejectionReason = "other"
)

// AllRejectionReasons returns the reasons in display order.
func AllRejectionReasons() []RejectionReason {
	return []RejectionReason{
		ReasonOutOfStock,
		ReasonProductDiscontinued,
		ReasonQualityIssue,
		ReasonManufacturingDelay,
		ReasonSupplierIssue,
		ReasonOther,
	}
}

func getRejectionReasonLabels() map[RejectionReason]string {
	return map[RejectionReason]string{
		ReasonOutOfStock:          "Out of stock",
		ReasonProductDiscontinued: "Product discontinued",
		ReasonQualityIssue:        "Quality issue",
		ReasonManufacturingDelay:  "Manufacturing delay",
		ReasonSupplierIssue:       "Supplier issue",
		ReasonOther:               "Other",
	}
}

// ParseRejectionReason accepts the wire code ("out_of_stock") as well as the
// enum spelling ("OutOfStock").
func ParseRejectionReason(code string) (RejectionReason, error) {
	normalized := normalizeReasonCode(code)
	for _, r := range AllRejectionReasons() {
		if string(r) == normalized {
			return r, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause(
		"rejection reason is invalid",
		fmt.Errorf("%q is not one of %s", code, strings.Join(rejectionReasonCodes(), ", ")),
	)
}

// Label returns the human readable label, or the raw code for reasons
// outside the closed set.
func (r RejectionReason) Label() string {
	if label, ok := getRejectionReasonLabels()[r]; ok {
		return label
	}
	return string(r)
}

func (r RejectionReason) String() string {
	return string(r)
}

func rejectionReasonCodes() []string {
	codes := make([]string, 0, len(AllRejectionReasons()))
	for _, r := range AllRejectionReasons() {
		codes = append(codes, string(r))
	}
	return codes
}

// normalizeReasonCode turns "OutOfStock", "out-of-stock" and " OUT_OF_STOCK "
// into "out_of_stock".
func normalizeReasonCode(code string) string {
	code = strings.TrimSpace(code)
	var b strings.Builder
	for i, r := range code {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && !strings.HasSuffix(b.String(), "_") && isLowerAt(code, i-1) {
				b.WriteRune('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLowerAt(s string, i int) bool {
	return s[i] >= 'a' && s[i] <= 'z'
}
