package orderapi_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/orderapi"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const orderBody = `{
	"id": "%s",
	"status": "processing",
	"cancellationRequestedAt": null,
	"returnRequestedAt": null,
	"items": [
		{"id": "%s", "status": "%s", "rejectionReason": "%s", "quantity": 2, "unitPrice": "12.50", "currency": "ZAR", "productRef": "prod-1"},
		{"id": "%s", "status": "awaiting_courier", "quantity": 1, "unitPrice": 5, "currency": "ZAR", "productRef": "prod-2"}
	]
}`

type fixture struct {
	orderID kernel.UUID
	itemID  kernel.UUID
	otherID kernel.UUID
}

func newFixture() fixture {
	return fixture{orderID: kernel.NewUUID(), itemID: kernel.NewUUID(), otherID: kernel.NewUUID()}
}

func (f fixture) body(status, reason string) string {
	return fmt.Sprintf(orderBody, f.orderID, f.itemID, status, reason, f.otherID)
}

func TestClient_FetchOrder(t *testing.T) {
	t.Run("should map the remote order", func(t *testing.T) {
		f := newFixture()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/orders/"+f.orderID.String(), r.URL.Path)
			_, _ = io.WriteString(w, f.body("accepted", ""))
		}))
		defer server.Close()

		o, err := orderapi.NewClient(server.URL+"/", time.Second).FetchOrder(t.Context(), f.orderID)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(f.orderID))
		assert.Equal(t, order.StatusProcessing, o.Status())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, order.ItemAccepted, o.Items()[0].Status())
		assert.Equal(t, "25.00 ZAR", o.Items()[0].LineTotal().String())
		assert.Equal(t, order.ItemUnknown, o.Items()[1].Status(), "unknown remote statuses are tolerated")
		assert.Equal(t, "awaiting_courier", o.Items()[1].StatusName())
		assert.Equal(t, "accepted", o.Items()[0].StatusName())
	})

	t.Run("should report a missing order as not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Order not found"}`)
		}))
		defer server.Close()

		_, err := orderapi.NewClient(server.URL, time.Second).FetchOrder(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should inject the trace context", func(t *testing.T) {
		f := newFixture()
		traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
		parent := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     trace.SpanID{0, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
			TraceFlags: trace.FlagsSampled,
			Remote:     true,
		})

		var traceparent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceparent = r.Header.Get("traceparent")
			_, _ = io.WriteString(w, f.body("pending", ""))
		}))
		defer server.Close()

		client := orderapi.NewClient(server.URL, time.Second,
			orderapi.WithTracer(noop.NewTracerProvider().Tracer("test")),
			orderapi.WithPropagator(propagation.TraceContext{}),
		)
		ctx := trace.ContextWithRemoteSpanContext(t.Context(), parent)

		_, err := client.FetchOrder(ctx, f.orderID)

		require.NoError(t, err)
		assert.Contains(t, traceparent, traceID.String())
	})
}

func TestClient_ApplyItemStatus(t *testing.T) {
	t.Run("should patch the item and return the updated order", func(t *testing.T) {
		f := newFixture()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/order-items/"+f.itemID.String()+"/status", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"status": "rejected", "rejectionReason": "out_of_stock"}, body)

			_, _ = io.WriteString(w, f.body("rejected", "out_of_stock"))
		}))
		defer server.Close()

		o, err := orderapi.NewClient(server.URL, time.Second).
			ApplyItemStatus(t.Context(), f.itemID, order.ItemRejected, "out_of_stock")

		require.NoError(t, err)
		item, err := o.Item(f.itemID)
		require.NoError(t, err)
		assert.Equal(t, order.ItemRejected, item.Status())
		assert.Equal(t, "out_of_stock", item.RejectionReason())
	})

	t.Run("should omit an empty rejection reason", func(t *testing.T) {
		f := newFixture()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"status":"accepted"}`, string(raw))
			_, _ = io.WriteString(w, f.body("accepted", ""))
		}))
		defer server.Close()

		_, err := orderapi.NewClient(server.URL, time.Second).
			ApplyItemStatus(t.Context(), f.itemID, order.ItemAccepted, "")

		require.NoError(t, err)
	})

	t.Run("should pass the remote message through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"message":"Item is already shipped"}`)
		}))
		defer server.Close()

		_, err := orderapi.NewClient(server.URL, time.Second).
			ApplyItemStatus(t.Context(), kernel.NewUUID(), order.ItemAccepted, "")

		require.EqualError(t, err, "Item is already shipped")
		var remote *orderapi.RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, http.StatusConflict, remote.StatusCode)
	})

	t.Run("should describe a failure without a message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := orderapi.NewClient(server.URL, time.Second).
			ApplyItemStatus(t.Context(), kernel.NewUUID(), order.ItemAccepted, "")

		require.EqualError(t, err, "order service returned 502 Bad Gateway")
	})

	t.Run("should give up after the timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		_, err := orderapi.NewClient(server.URL, 20*time.Millisecond).
			ApplyItemStatus(t.Context(), kernel.NewUUID(), order.ItemAccepted, "")

		require.Error(t, err)
	})
}
