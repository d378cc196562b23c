package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatus_AllowedNextStatuses(t *testing.T) {
	cases := []struct {
		current  order.ItemStatus
		expected order.StatusSet
	}{
		{order.ItemPending, order.StatusSet{order.ItemPending, order.ItemRejected, order.ItemAccepted}},
		{order.ItemAccepted, order.StatusSet{order.ItemAccepted, order.ItemProcessing}},
		{order.ItemProcessing, order.StatusSet{order.ItemProcessing, order.ItemPicked}},
		{order.ItemPicked, order.StatusSet{order.ItemPicked}},
		{order.ItemRejected, order.StatusSet{order.ItemRejected}},
		{order.ItemPacked, order.StatusSet{order.ItemPacked}},
		{order.ItemShipped, order.StatusSet{order.ItemShipped}},
		{order.ItemUnknown, order.StatusSet{order.ItemUnknown}},
		{order.ItemStatus(42), order.StatusSet{order.ItemStatus(42)}},
	}

	for _, tc := range cases {
		t.Run("should return the table row for "+tc.current.String(), func(t *testing.T) {
			assert.ElementsMatch(t, tc.expected, tc.current.AllowedNextStatuses())
		})
	}

	t.Run("should always include the current status", func(t *testing.T) {
		for s := order.ItemUnknown; s <= order.ItemShipped; s++ {
			assert.True(t, s.AllowedNextStatuses().Contains(s), s.String())
		}
	})

	t.Run("should never offer rejection outside pending", func(t *testing.T) {
		for _, s := range []order.ItemStatus{order.ItemAccepted, order.ItemProcessing, order.ItemPicked} {
			assert.False(t, s.AllowedNextStatuses().Contains(order.ItemRejected), s.String())
		}
	})

	t.Run("should never lead back to an earlier status", func(t *testing.T) {
		assert.False(t, order.ItemAccepted.CanTransitionTo(order.ItemPending))
		assert.False(t, order.ItemProcessing.CanTransitionTo(order.ItemAccepted))
		assert.False(t, order.ItemPicked.CanTransitionTo(order.ItemProcessing))
		assert.False(t, order.ItemRejected.CanTransitionTo(order.ItemAccepted))
	})
}

func TestParseItemStatus(t *testing.T) {
	t.Run("should parse names case insensitively", func(t *testing.T) {
		s, err := order.ParseItemStatus(" Processing ")

		require.NoError(t, err)
		assert.Equal(t, order.ItemProcessing, s)
	})

	t.Run("should round trip every declared status", func(t *testing.T) {
		for s := order.ItemPending; s <= order.ItemShipped; s++ {
			parsed, err := order.ParseItemStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should return unknown for unrecognized names", func(t *testing.T) {
		s, err := order.ParseItemStatus("delivered")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.ItemUnknown, s)
	})

	t.Run("should not parse the unknown placeholder", func(t *testing.T) {
		_, err := order.ParseItemStatus("unknown")

		require.Error(t, err)
	})
}

func TestItemStatus_Classification(t *testing.T) {
	t.Run("should mark vendor managed statuses", func(t *testing.T) {
		assert.True(t, order.ItemPending.IsVendorManaged())
		assert.True(t, order.ItemPicked.IsVendorManaged())
		assert.False(t, order.ItemPacked.IsVendorManaged())
		assert.False(t, order.ItemShipped.IsVendorManaged())
	})

	t.Run("should validate only declared statuses", func(t *testing.T) {
		require.NoError(t, order.ItemShipped.Validate())
		require.ErrorIs(t, order.ItemUnknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.ItemStatus(99).Validate(), errs.ErrValueIsInvalid)
		assert.Equal(t, "unknown", order.ItemStatus(99).String())
	})
}

func TestStatusSet_Strings(t *testing.T) {
	t.Run("should keep the table order", func(t *testing.T) {
		assert.Equal(t, []string{"pending", "rejected", "accepted"}, order.ItemPending.AllowedNextStatuses().Strings())
	})
}
