package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.RejectionWorkflowStore = (*RejectionWorkflowStore)(nil)

type pendingRejectionDTO struct {
	OrderID   kernel.UUID `json:"orderId"`
	ItemID    kernel.UUID `json:"itemId"`
	Reason    string      `json:"reason,omitempty"`
	StartedAt time.Time   `json:"startedAt"`
}

// RejectionWorkflowStore keeps pending rejections as JSON values. Redis
// expires abandoned entries, so no janitor is needed for this backend.
type RejectionWorkflowStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewRejectionWorkflowStore(client goredis.UniversalClient, ttl time.Duration) *RejectionWorkflowStore {
	return &RejectionWorkflowStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RejectionWorkflowStore) Get(ctx context.Context, itemID kernel.UUID) (order.PendingRejection, bool, error) {
	raw, err := s.client.Get(ctx, key("rejection", itemID.String())).Bytes()
	if errors.Is(err, goredis.Nil) {
		return order.PendingRejection{}, false, nil
	}
	if err != nil {
		return order.PendingRejection{}, false, fmt.Errorf("get pending rejection: %w", err)
	}

	var dto pendingRejectionDTO
	if err = json.Unmarshal(raw, &dto); err != nil {
		return order.PendingRejection{}, false, fmt.Errorf("decode pending rejection: %w", err)
	}

	return order.PendingRejection{
		OrderID:   dto.OrderID,
		ItemID:    dto.ItemID,
		Reason:    dto.Reason,
		StartedAt: dto.StartedAt,
	}, true, nil
}

func (s *RejectionWorkflowStore) Put(ctx context.Context, pending order.PendingRejection) error {
	raw, err := json.Marshal(pendingRejectionDTO{
		OrderID:   pending.OrderID,
		ItemID:    pending.ItemID,
		Reason:    pending.Reason,
		StartedAt: pending.StartedAt,
	})
	if err != nil {
		return fmt.Errorf("encode pending rejection: %w", err)
	}

	if err = s.client.Set(ctx, key("rejection", pending.ItemID.String()), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put pending rejection: %w", err)
	}
	return nil
}

func (s *RejectionWorkflowStore) Delete(ctx context.Context, itemID kernel.UUID) error {
	if err := s.client.Del(ctx, key("rejection", itemID.String())).Err(); err != nil {
		return fmt.Errorf("delete pending rejection: %w", err)
	}
	return nil
}
