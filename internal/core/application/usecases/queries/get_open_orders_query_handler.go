package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler lists open orders from the database, oldest first.
//
// Example:
//
//	handler := NewGetOpenOrdersQueryHandler(db)
//	open, err := handler.Handle(ctx, NewGetOpenOrdersQuery())
//	if err != nil {
//	    return err
//	}
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are sorted by placement time, then ID.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			COUNT(i.id) AS open_items,
			(o.cancellation_requested_at IS NOT NULL OR o.return_requested_at IS NOT NULL) AS frozen,
			o.created_at
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE i.status IN ?
		GROUP BY o.id, o.status, o.cancellation_requested_at, o.return_requested_at, o.created_at
		ORDER BY o.created_at, o.id
	`, []string{
		order.ItemPending.String(),
		order.ItemAccepted.String(),
		order.ItemProcessing.String(),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var placedAt time.Time

		err = rows.Scan(
			&id,
			&resp.Status,
			&resp.OpenItems,
			&resp.CustomerRequestPending,
			&placedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.PlacedAt = placedAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
