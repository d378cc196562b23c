package services_test

import (
	"bytes"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, status order.ItemStatus, returnRequested bool) *order.Item {
	t.Helper()
	unitPrice, err := kernel.MoneyFromString("25.00", "ZAR")
	require.NoError(t, err)

	state := order.ItemState{
		ID:         kernel.NewUUID(),
		Status:     status,
		Quantity:   1,
		UnitPrice:  unitPrice,
		ProductRef: "prod-1",
	}
	if status == order.ItemRejected {
		state.RejectionReason = "out_of_stock"
	}
	if returnRequested {
		at := time.Now().UTC()
		state.ReturnRequestedAt = &at
	}

	item, err := order.RestoreItem(state)
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T, requests order.Requests, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), order.StatusAccepted, items, requests)
	require.NoError(t, err)
	return o
}

func requestedAt() *time.Time {
	at := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return &at
}

func TestTransitionValidator_Validate(t *testing.T) {
	validator := services.NewTransitionValidator(zerolog.Nop())

	t.Run("should refuse an illegal skip from pending to processing", func(t *testing.T) {
		item := newItem(t, order.ItemPending, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemProcessing, "")

		assert.Equal(t, services.VerdictRefused, result.Verdict)
		assert.Equal(t, order.ConflictInvalidTransition, result.Conflict)
		require.ErrorIs(t, result.Err(), order.ErrInvalidTransition)
		assert.Contains(t, result.Err().Error(), "pending")
		assert.Contains(t, result.Err().Error(), "processing")
	})

	t.Run("should accept moving accepted to processing", func(t *testing.T) {
		item := newItem(t, order.ItemAccepted, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemProcessing, "")

		assert.True(t, result.IsValid())
		assert.False(t, result.IsNoop())
		assert.NoError(t, result.Err())
	})

	t.Run("should refuse rejecting an item with a return request", func(t *testing.T) {
		item := newItem(t, order.ItemPending, true)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemRejected, "OutOfStock")

		assert.Equal(t, services.VerdictRefused, result.Verdict)
		assert.Equal(t, order.ConflictItemReturnPending, result.Conflict)
		require.ErrorIs(t, result.Err(), order.ErrItemReturnPending)
	})

	t.Run("should need a reason before rejecting", func(t *testing.T) {
		item := newItem(t, order.ItemPending, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemRejected, "")

		assert.True(t, result.NeedsReason())
		require.ErrorIs(t, result.Err(), order.ErrReasonRequired)
		assert.Equal(t, order.ConflictNone, result.Conflict)
	})

	t.Run("should accept a rejection with a reason", func(t *testing.T) {
		item := newItem(t, order.ItemPending, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemRejected, "OutOfStock")

		assert.True(t, result.IsValid())
	})

	t.Run("should keep rejection final", func(t *testing.T) {
		item := newItem(t, order.ItemRejected, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemAccepted, "quality_issue")

		assert.Equal(t, order.ConflictInvalidTransition, result.Conflict)
	})

	t.Run("should treat the current status as a valid no-op", func(t *testing.T) {
		for _, s := range []order.ItemStatus{order.ItemPending, order.ItemAccepted, order.ItemRejected, order.ItemProcessing, order.ItemPicked, order.ItemPacked, order.ItemShipped} {
			item := newItem(t, s, false)
			o := newOrder(t, order.Requests{}, item)

			for _, reason := range []string{"", "out_of_stock"} {
				result := validator.Validate(o, item, s, reason)

				assert.True(t, result.IsNoop(), "%s with reason %q", s, reason)
				assert.Equal(t, order.ConflictNone, result.Conflict)
			}
		}
	})

	t.Run("should refuse every target while cancellation is requested", func(t *testing.T) {
		targets := []order.ItemStatus{
			order.ItemPending, order.ItemAccepted, order.ItemRejected,
			order.ItemProcessing, order.ItemPicked, order.ItemPacked, order.ItemShipped,
		}
		for _, current := range targets {
			item := newItem(t, current, false)
			o := newOrder(t, order.Requests{CancellationRequestedAt: requestedAt()}, item)

			for _, target := range targets {
				result := validator.Validate(o, item, target, "other")

				assert.Equal(t, order.ConflictCancellationPending, result.Conflict, "%s -> %s", current, target)
			}
		}
	})

	t.Run("should rank the order return above the item return", func(t *testing.T) {
		item := newItem(t, order.ItemAccepted, true)
		o := newOrder(t, order.Requests{ReturnRequestedAt: requestedAt()}, item)

		result := validator.Validate(o, item, order.ItemProcessing, "")

		assert.Equal(t, order.ConflictOrderReturnPending, result.Conflict)
	})

	t.Run("should refuse an unrecognized target", func(t *testing.T) {
		item := newItem(t, order.ItemUnknown, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemUnknown, "")

		assert.Equal(t, order.ConflictInvalidTransition, result.Conflict)
	})
}

func TestTransitionValidator_UnrecognizedStatus(t *testing.T) {
	t.Run("should log a warning and lock the item", func(t *testing.T) {
		var buf bytes.Buffer
		validator := services.NewTransitionValidator(zerolog.New(&buf))
		item := newItem(t, order.ItemUnknown, false)
		o := newOrder(t, order.Requests{}, item)

		result := validator.Validate(o, item, order.ItemAccepted, "")

		assert.Equal(t, order.ConflictInvalidTransition, result.Conflict)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), item.ID().String())
		assert.Contains(t, buf.String(), "transition-validator")
	})

	t.Run("should log the status name the store sent", func(t *testing.T) {
		var buf bytes.Buffer
		validator := services.NewTransitionValidator(zerolog.New(&buf))
		unitPrice, err := kernel.MoneyFromString("25.00", "ZAR")
		require.NoError(t, err)
		item, err := order.RestoreItem(order.ItemState{
			ID:         kernel.NewUUID(),
			Status:     order.ItemUnknown,
			StatusName: "awaiting_courier",
			Quantity:   1,
			UnitPrice:  unitPrice,
		})
		require.NoError(t, err)
		o := newOrder(t, order.Requests{}, item)

		validator.Validate(o, item, order.ItemAccepted, "")

		assert.Contains(t, buf.String(), `"status":"awaiting_courier"`)
	})

	t.Run("should stay quiet for downstream statuses", func(t *testing.T) {
		var buf bytes.Buffer
		validator := services.NewTransitionValidator(zerolog.New(&buf))
		item := newItem(t, order.ItemShipped, false)
		o := newOrder(t, order.Requests{}, item)

		validator.Validate(o, item, order.ItemPicked, "")

		assert.Empty(t, buf.String())
	})
}

func TestVerdict_String(t *testing.T) {
	t.Run("should name every verdict", func(t *testing.T) {
		assert.Equal(t, "valid", services.VerdictValid.String())
		assert.Equal(t, "needs_reason", services.VerdictNeedsReason.String())
		assert.Equal(t, "refused", services.VerdictRefused.String())
	})
}
