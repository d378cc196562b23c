package memory

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	gocache "github.com/patrickmn/go-cache"
)

var _ ports.RejectionWorkflowStore = (*RejectionWorkflowStore)(nil)

// RejectionWorkflowStore keeps pending rejections in memory. An entry that is
// neither confirmed nor cancelled within ttl falls back to Idle. Expired
// entries stay in memory until Purge.
type RejectionWorkflowStore struct {
	store *gocache.Cache
	ttl   time.Duration
}

func NewRejectionWorkflowStore(ttl time.Duration) *RejectionWorkflowStore {
	return &RejectionWorkflowStore{
		store: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (s *RejectionWorkflowStore) Get(_ context.Context, itemID kernel.UUID) (order.PendingRejection, bool, error) {
	value, found := s.store.Get(itemID.String())
	if !found {
		return order.PendingRejection{}, false, nil
	}
	return value.(order.PendingRejection), true, nil
}

func (s *RejectionWorkflowStore) Put(_ context.Context, pending order.PendingRejection) error {
	s.store.Set(pending.ItemID.String(), pending, s.ttl)
	return nil
}

func (s *RejectionWorkflowStore) Delete(_ context.Context, itemID kernel.UUID) error {
	s.store.Delete(itemID.String())
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (s *RejectionWorkflowStore) Purge() int {
	before := s.store.ItemCount()
	s.store.DeleteExpired()
	return before - s.store.ItemCount()
}
