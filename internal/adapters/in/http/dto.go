package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

type ChangeItemStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type ChangeItemStatusesRequest struct {
	Changes []ItemStatusChangeRequest `json:"changes"`
}

type ItemStatusChangeRequest struct {
	ItemID string `json:"itemId"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type SelectRejectionReasonRequest struct {
	Reason string `json:"reason"`
}

type RejectCustomerRequestRequest struct {
	Reason string `json:"reason"`
}

type PlaceOrderRequest struct {
	OrderID string                  `json:"orderId"`
	Items   []PlaceOrderItemRequest `json:"items"`
}

type PlaceOrderItemRequest struct {
	ItemID     string `json:"itemId"`
	ProductRef string `json:"productRef"`
	VariantRef string `json:"variantRef"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Currency   string `json:"currency"`
}

type PlaceOrderResponse struct {
	ID string `json:"id"`
}

type TransitionResponse struct {
	Outcome string         `json:"outcome"`
	Order   *OrderResponse `json:"order,omitempty"`
}

type ItemStatusChangeResponse struct {
	ItemID  string         `json:"itemId"`
	Outcome string         `json:"outcome,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type OrderResponse struct {
	ID       string           `json:"id"`
	Status   string           `json:"status"`
	Requests RequestsResponse `json:"requests"`
	Items    []ItemResponse   `json:"items"`
}

type RequestsResponse struct {
	CancellationRequestedAt     *time.Time `json:"cancellationRequestedAt,omitempty"`
	CancellationRejectionReason string     `json:"cancellationRejectionReason,omitempty"`
	ReturnRequestedAt           *time.Time `json:"returnRequestedAt,omitempty"`
	ReturnRejectionReason       string     `json:"returnRejectionReason,omitempty"`
}

type ItemResponse struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`
	ReturnRequestedAt *time.Time `json:"returnRequestedAt,omitempty"`
	Quantity          int        `json:"quantity"`
	UnitPrice         string     `json:"unitPrice"`
	LineTotal         string     `json:"lineTotal"`
	Currency          string     `json:"currency"`
	ProductRef        string     `json:"productRef"`
	VariantRef        string     `json:"variantRef,omitempty"`
}

// FulfillmentItemResponse adds what the vendor may do with the item.
type FulfillmentItemResponse struct {
	ItemResponse
	AllowedNextStatuses []string                  `json:"allowedNextStatuses"`
	Editable            bool                      `json:"editable"`
	Conflict            string                    `json:"conflict,omitempty"`
	ConflictLabel       string                    `json:"conflictLabel,omitempty"`
	PendingRejection    *PendingRejectionResponse `json:"pendingRejection,omitempty"`
}

type FulfillmentResponse struct {
	ID       string                    `json:"id"`
	Status   string                    `json:"status"`
	Requests RequestsResponse          `json:"requests"`
	Items    []FulfillmentItemResponse `json:"items"`
}

type PendingRejectionResponse struct {
	ItemID    string    `json:"itemId"`
	Reason    string    `json:"reason,omitempty"`
	StartedAt time.Time `json:"startedAt"`
}

type RejectionReasonResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type HistoryEntryResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

type OpenOrderResponse struct {
	ID                     string    `json:"id"`
	Status                 string    `json:"status"`
	OpenItems              int       `json:"openItems"`
	CustomerRequestPending bool      `json:"customerRequestPending"`
	PlacedAt               time.Time `json:"placedAt"`
}

func toTransitionResponse(result commands.TransitionResult) TransitionResponse {
	resp := TransitionResponse{Outcome: string(result.Outcome)}
	if result.Order != nil && result.Outcome != commands.OutcomeAwaitingReason {
		view := toOrderResponse(result.Order)
		resp.Order = &view
	}
	return resp
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:       o.ID().String(),
		Status:   o.Status().String(),
		Requests: toRequestsResponse(o.Requests()),
		Items:    make([]ItemResponse, 0, len(o.Items())),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}

func toRequestsResponse(r order.Requests) RequestsResponse {
	return RequestsResponse{
		CancellationRequestedAt:     r.CancellationRequestedAt,
		CancellationRejectionReason: r.CancellationRejectionReason,
		ReturnRequestedAt:           r.ReturnRequestedAt,
		ReturnRejectionReason:       r.ReturnRejectionReason,
	}
}

func toItemResponse(item *order.Item) ItemResponse {
	return ItemResponse{
		ID:                item.ID().String(),
		Status:            item.Status().String(),
		RejectionReason:   item.RejectionReason(),
		ReturnRequestedAt: item.ReturnRequestedAt(),
		Quantity:          item.Quantity(),
		UnitPrice:         item.UnitPrice().Amount().StringFixed(2),
		LineTotal:         item.LineTotal().Amount().StringFixed(2),
		Currency:          item.UnitPrice().Currency(),
		ProductRef:        item.ProductRef(),
		VariantRef:        item.VariantRef(),
	}
}

func toFulfillmentResponse(view queries.GetOrderFulfillmentQueryResponse) FulfillmentResponse {
	resp := FulfillmentResponse{
		ID:       view.ID.String(),
		Status:   view.Status.String(),
		Requests: toRequestsResponse(view.Requests),
		Items:    make([]FulfillmentItemResponse, 0, len(view.Items)),
	}

	for _, item := range view.Items {
		entry := FulfillmentItemResponse{
			ItemResponse: ItemResponse{
				ID:                item.ID.String(),
				Status:            item.Status.String(),
				RejectionReason:   item.RejectionReason,
				ReturnRequestedAt: item.ReturnRequestedAt,
				Quantity:          item.Quantity,
				UnitPrice:         item.UnitPrice.Amount().StringFixed(2),
				LineTotal:         item.LineTotal.Amount().StringFixed(2),
				Currency:          item.UnitPrice.Currency(),
				ProductRef:        item.ProductRef,
				VariantRef:        item.VariantRef,
			},
			AllowedNextStatuses: item.AllowedNextStatuses.Strings(),
			Editable:            item.Editable,
			ConflictLabel:       item.ConflictLabel,
		}
		if item.Conflict != order.ConflictNone {
			entry.Conflict = item.Conflict.String()
		}
		if item.PendingRejection != nil {
			entry.PendingRejection = toPendingRejectionResponse(*item.PendingRejection)
		}
		resp.Items = append(resp.Items, entry)
	}

	return resp
}

func toPendingRejectionResponse(p order.PendingRejection) *PendingRejectionResponse {
	return &PendingRejectionResponse{
		ItemID:    p.ItemID.String(),
		Reason:    p.Reason,
		StartedAt: p.StartedAt,
	}
}
