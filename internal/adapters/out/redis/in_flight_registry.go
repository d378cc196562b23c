package redis

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.InFlightRegistry = (*InFlightRegistry)(nil)

// releaseScript deletes the marker only when it still holds the caller's token.
//
// KEYS[1]: marker key
// ARGV[1]: token
var releaseScript = goredis.NewScript(`
if redis.call('get', KEYS[1]) == ARGV[1] then
    return redis.call('del', KEYS[1])
end
return 0
`)

type InFlightRegistry struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewInFlightRegistry(client goredis.UniversalClient, ttl time.Duration) *InFlightRegistry {
	return &InFlightRegistry{
		client: client,
		ttl:    ttl,
	}
}

func (r *InFlightRegistry) Acquire(ctx context.Context, itemID kernel.UUID) (string, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key("inflight", itemID.String()), token, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire in-flight marker: %w", err)
	}
	if !ok {
		return "", ports.ErrItemBusy
	}

	return token, nil
}

func (r *InFlightRegistry) Release(ctx context.Context, itemID kernel.UUID, token string) error {
	err := releaseScript.Run(ctx, r.client, []string{key("inflight", itemID.String())}, token).Err()
	if err != nil {
		return fmt.Errorf("release in-flight marker: %w", err)
	}
	return nil
}
