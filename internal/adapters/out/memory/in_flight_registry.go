package memory

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const inFlightKeyPrefix = "inflight:"

var _ ports.InFlightRegistry = (*InFlightRegistry)(nil)

// InFlightRegistry marks items with a transition attempt in progress.
// Markers expire after ttl. Expired markers stay in memory until Purge.
type InFlightRegistry struct {
	store *gocache.Cache
	ttl   time.Duration

	// guards the compare step of Release
	mu sync.Mutex
}

func NewInFlightRegistry(ttl time.Duration) *InFlightRegistry {
	return &InFlightRegistry{
		store: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (r *InFlightRegistry) Acquire(_ context.Context, itemID kernel.UUID) (string, error) {
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Add(inFlightKey(itemID), token, r.ttl); err != nil {
		return "", ports.ErrItemBusy
	}

	return token, nil
}

func (r *InFlightRegistry) Release(_ context.Context, itemID kernel.UUID, token string) error {
	key := inFlightKey(itemID)

	r.mu.Lock()
	defer r.mu.Unlock()

	held, found := r.store.Get(key)
	if !found || held.(string) != token {
		return nil
	}

	r.store.Delete(key)
	return nil
}

// Purge drops expired markers and returns how many were removed.
func (r *InFlightRegistry) Purge() int {
	before := r.store.ItemCount()
	r.store.DeleteExpired()
	return before - r.store.ItemCount()
}

func inFlightKey(itemID kernel.UUID) string {
	return inFlightKeyPrefix + itemID.String()
}
