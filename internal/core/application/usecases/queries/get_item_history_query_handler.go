package queries

import (
	"context"
	"time"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetItemHistoryQueryHandler reads the transition history written by the
// postgres order repository.
type GetItemHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetItemHistoryQueryHandler(db *gorm.DB) GetItemHistoryQueryHandler {
	return GetItemHistoryQueryHandler{db: db}
}

// Handle returns the transitions oldest first. An item that does not belong
// to the order yields an errs.ObjectNotFoundError; an item without
// transitions yields an empty slice.
func (h GetItemHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetItemHistoryQuery,
) ([]GetItemHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var owned int64
	err := db.Raw(
		`SELECT COUNT(*) FROM order_items WHERE id = ? AND order_id = ?`,
		query.ItemID().Bytes(), query.OrderID().Bytes(),
	).Scan(&owned).Error
	if err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, errs.NewObjectNotFoundError("itemId", query.ItemID())
	}

	history := make([]GetItemHistoryQueryResponse, 0)

	rows, err := db.Raw(`
		SELECT
			from_status,
			to_status,
			reason,
			changed_at
		FROM item_status_history
		WHERE order_id = ? AND item_id = ?
		ORDER BY changed_at, id
	`, query.OrderID().Bytes(), query.ItemID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetItemHistoryQueryResponse
		var changedAt time.Time

		if err = rows.Scan(&entry.From, &entry.To, &entry.Reason, &changedAt); err != nil {
			return nil, err
		}

		entry.ChangedAt = changedAt.UTC()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
