package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	fkafka "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestEventPublisher_Publish(t *testing.T) {
	t.Run("should key every message by order id", func(t *testing.T) {
		writer := &fakeWriter{}
		orderID := kernel.NewUUID()
		itemID := kernel.NewUUID()
		at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

		err := fkafka.NewEventPublisher(writer).Publish(t.Context(),
			order.ItemStatusChanged{Order: orderID, ItemID: itemID, From: order.ItemPending, To: order.ItemRejected, Reason: "damaged", At: at},
			order.CancellationRequested{Order: orderID, At: at},
		)

		require.NoError(t, err)
		require.Len(t, writer.written, 2)
		for _, msg := range writer.written {
			assert.Equal(t, orderID.String(), string(msg.Key))
		}

		var body map[string]any
		require.NoError(t, json.Unmarshal(writer.written[0].Value, &body))
		assert.Equal(t, order.EventItemStatusChanged, body["name"])
		assert.Equal(t, itemID.String(), body["itemId"])
		assert.Equal(t, "pending", body["from"])
		assert.Equal(t, "rejected", body["to"])
		assert.Equal(t, "damaged", body["reason"])
		assert.Equal(t, "event", writer.written[0].Headers[0].Key)

		require.NoError(t, json.Unmarshal(writer.written[1].Value, &body))
		assert.Equal(t, order.EventCancellationRequested, body["name"])
	})

	t.Run("should omit item fields on order level events", func(t *testing.T) {
		writer := &fakeWriter{}

		err := fkafka.NewEventPublisher(writer).Publish(t.Context(),
			order.ReturnRequested{Order: kernel.NewUUID(), At: time.Now()})

		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(writer.written[0].Value, &body))
		assert.NotContains(t, body, "itemId")
		assert.NotContains(t, body, "from")
	})

	t.Run("should not touch the writer without events", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("must not be called")}

		require.NoError(t, fkafka.NewEventPublisher(writer).Publish(t.Context()))
	})

	t.Run("should wrap writer errors", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("broker unavailable")}

		err := fkafka.NewEventPublisher(writer).Publish(t.Context(),
			order.ItemReturnRequested{Order: kernel.NewUUID(), ItemID: kernel.NewUUID(), At: time.Now()})

		require.ErrorContains(t, err, "broker unavailable")
	})

	t.Run("should close the writer", func(t *testing.T) {
		writer := &fakeWriter{}

		require.NoError(t, fkafka.NewEventPublisher(writer).Close())
		assert.True(t, writer.closed)
	})
}
