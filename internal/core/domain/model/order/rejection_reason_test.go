package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectionReason(t *testing.T) {
	accepted := map[string]order.RejectionReason{
		"out_of_stock":        order.ReasonOutOfStock,
		"OutOfStock":          order.ReasonOutOfStock,
		" OUT_OF_STOCK ":      order.ReasonOutOfStock,
		"out-of-stock":        order.ReasonOutOfStock,
		"ProductDiscontinued": order.ReasonProductDiscontinued,
		"quality_issue":       order.ReasonQualityIssue,
		"ManufacturingDelay":  order.ReasonManufacturingDelay,
		"supplier_issue":      order.ReasonSupplierIssue,
		"Other":               order.ReasonOther,
	}

	for in, expected := range accepted {
		t.Run("should accept "+in, func(t *testing.T) {
			r, err := order.ParseRejectionReason(in)

			require.NoError(t, err)
			assert.Equal(t, expected, r)
		})
	}

	t.Run("should reject free text", func(t *testing.T) {
		_, err := order.ParseRejectionReason("vendor is on holiday")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "out_of_stock")
	})

	t.Run("should reject an empty code", func(t *testing.T) {
		_, err := order.ParseRejectionReason("  ")

		require.Error(t, err)
	})
}

func TestRejectionReason_Label(t *testing.T) {
	t.Run("should label every reason", func(t *testing.T) {
		reasons := order.AllRejectionReasons()

		require.Len(t, reasons, 6)
		for _, r := range reasons {
			assert.NotEqual(t, string(r), r.Label())
		}
	})

	t.Run("should fall back to the raw code", func(t *testing.T) {
		assert.Equal(t, "legacy_code", order.RejectionReason("legacy_code").Label())
	})
}
