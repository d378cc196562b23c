package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func price(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "ZAR")
	require.NoError(t, err)
	return m
}

func restoredItem(t *testing.T, status order.ItemStatus, mutate ...func(*order.ItemState)) *order.Item {
	t.Helper()
	state := order.ItemState{
		ID:         kernel.NewUUID(),
		Status:     status,
		Quantity:   1,
		UnitPrice:  price(t, "10.00"),
		ProductRef: "prod-1",
	}
	if status == order.ItemRejected {
		state.RejectionReason = string(order.ReasonOutOfStock)
	}
	for _, m := range mutate {
		m(&state)
	}
	item, err := order.RestoreItem(state)
	require.NoError(t, err)
	return item
}

func restoredOrder(t *testing.T, status order.Status, requests order.Requests, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), status, items, requests)
	require.NoError(t, err)
	return o
}

func timestamp() *time.Time {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &at
}
