package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetItemHistoryQueryIsNotConstructed = errors.New(
	"GetItemHistoryQuery must be created via NewGetItemHistoryQuery constructor",
)

// GetItemHistoryQuery retrieves the applied transitions of one order item.
type GetItemHistoryQuery struct {
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetItemHistoryQuery(orderID, itemID kernel.UUID) (GetItemHistoryQuery, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return GetItemHistoryQuery{}, err
	}

	return GetItemHistoryQuery{
		orderID: orderID,
		itemID:  itemID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetItemHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetItemHistoryQueryIsNotConstructed)
}

func (q GetItemHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetItemHistoryQuery) ItemID() kernel.UUID {
	return q.itemID
}

// GetItemHistoryQueryResponse is one applied transition. Reason is only set
// for rejections.
type GetItemHistoryQueryResponse struct {
	From      string
	To        string
	Reason    string
	ChangedAt time.Time
}
