// Package orderapi implements OrderStore and CommandSink against the remote
// order service over HTTP.
package orderapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fulfillment/orderapi"

var (
	_ ports.OrderStore  = (*Client)(nil)
	_ ports.CommandSink = (*Client)(nil)
)

// RemoteError is a non-2xx answer of the order service. Error returns the
// remote message unchanged so it can be shown to the vendor as is.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithTracer(t trace.Tracer) Option {
	return func(client *Client) { client.tracer = t }
}

func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(client *Client) { client.propagator = p }
}

// NewClient creates a client for baseURL. timeout bounds every call.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tracer:     otel.Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	var resp orderResponse

	err := c.do(ctx, "orderapi.FetchOrder", http.MethodGet, "/orders/"+url.PathEscape(orderID.String()), nil, &resp)
	var remote *RemoteError
	if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
		return nil, errs.NewObjectNotFoundErrorWithCause("orderId", orderID, remote)
	}
	if err != nil {
		return nil, err
	}

	return resp.toDomain()
}

func (c *Client) ApplyItemStatus(
	ctx context.Context,
	itemID kernel.UUID,
	status order.ItemStatus,
	rejectionReason string,
) (*order.Order, error) {
	var resp orderResponse

	body := statusRequest{
		Status:          status.String(),
		RejectionReason: rejectionReason,
	}

	path := "/order-items/" + url.PathEscape(itemID.String()) + "/status"
	if err := c.do(ctx, "orderapi.ApplyItemStatus", http.MethodPatch, path, body, &resp); err != nil {
		return nil, err
	}

	return resp.toDomain()
}

func (c *Client) do(ctx context.Context, spanName, method, path string, in, out any) error {
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	target := c.baseURL + path
	span.SetAttributes(
		attribute.String("http.url", target),
		attribute.String("http.method", method),
	)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fail(span, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(span, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(span, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(span, remoteError(resp, raw))
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fail(span, fmt.Errorf("decode response: %w", err))
	}

	return nil
}

func remoteError(resp *http.Response, raw []byte) *RemoteError {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return &RemoteError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	return &RemoteError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("order service returned %s", resp.Status),
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
