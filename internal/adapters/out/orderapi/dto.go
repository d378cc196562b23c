package orderapi

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type orderResponse struct {
	ID                          string         `json:"id"`
	Status                      string         `json:"status"`
	CancellationRequestedAt     *time.Time     `json:"cancellationRequestedAt"`
	CancellationRejectionReason string         `json:"cancellationRejectionReason"`
	ReturnRequestedAt           *time.Time     `json:"returnRequestedAt"`
	ReturnRejectionReason       string         `json:"returnRejectionReason"`
	Items                       []itemResponse `json:"items"`
}

type itemResponse struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	RejectionReason   string          `json:"rejectionReason"`
	ReturnRequestedAt *time.Time      `json:"returnRequestedAt"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Currency          string          `json:"currency"`
	ProductRef        string          `json:"productRef"`
	VariantRef        string          `json:"variantRef"`
}

type statusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// toDomain restores the order. Statuses this service does not know are kept
// as unknown so the item shows up locked instead of failing the whole order.
func (r orderResponse) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(r.Items))
	for _, it := range r.Items {
		item, itemErr := it.toDomain()
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, _ := order.ParseStatus(r.Status)

	return order.RestoreOrder(id, status, items, order.Requests{
		CancellationRequestedAt:     r.CancellationRequestedAt,
		CancellationRejectionReason: r.CancellationRejectionReason,
		ReturnRequestedAt:           r.ReturnRequestedAt,
		ReturnRejectionReason:       r.ReturnRejectionReason,
	})
}

func (r itemResponse) toDomain() (*order.Item, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(r.UnitPrice, r.Currency)
	if err != nil {
		return nil, err
	}

	status, _ := order.ParseItemStatus(r.Status)

	return order.RestoreItem(order.ItemState{
		ID:                id,
		Status:            status,
		StatusName:        r.Status,
		RejectionReason:   r.RejectionReason,
		ReturnRequestedAt: r.ReturnRequestedAt,
		Quantity:          r.Quantity,
		UnitPrice:         price,
		ProductRef:        r.ProductRef,
		VariantRef:        r.VariantRef,
	})
}
