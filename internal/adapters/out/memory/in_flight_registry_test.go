package memory_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInFlightRegistry(t *testing.T) {
	t.Run("should refuse a second acquire for the same item", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(time.Minute)
		itemID := kernel.NewUUID()

		token, err := registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, err = registry.Acquire(t.Context(), itemID)
		require.ErrorIs(t, err, ports.ErrItemBusy)
	})

	t.Run("should not block other items", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(time.Minute)

		_, err := registry.Acquire(t.Context(), kernel.NewUUID())
		require.NoError(t, err)
		_, err = registry.Acquire(t.Context(), kernel.NewUUID())
		require.NoError(t, err)
	})

	t.Run("should free the item on release by the holder", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(time.Minute)
		itemID := kernel.NewUUID()

		token, err := registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)
		require.NoError(t, registry.Release(t.Context(), itemID, token))

		_, err = registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)
	})

	t.Run("should ignore release with a foreign token", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(time.Minute)
		itemID := kernel.NewUUID()

		_, err := registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)
		require.NoError(t, registry.Release(t.Context(), itemID, "someone-else"))

		_, err = registry.Acquire(t.Context(), itemID)
		require.ErrorIs(t, err, ports.ErrItemBusy)
	})

	t.Run("should let an expired marker be taken over", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(20*time.Millisecond)
		itemID := kernel.NewUUID()

		stale, err := registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)
		time.Sleep(40 * time.Millisecond)

		fresh, err := registry.Acquire(t.Context(), itemID)
		require.NoError(t, err)

		require.NoError(t, registry.Release(t.Context(), itemID, stale))
		_, err = registry.Acquire(t.Context(), itemID)
		require.ErrorIs(t, err, ports.ErrItemBusy, "stale holder must not clear the new marker")

		require.NoError(t, registry.Release(t.Context(), itemID, fresh))
	})

	t.Run("should grant exactly one of many concurrent acquires", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(time.Minute)
		itemID := kernel.NewUUID()

		var granted atomic.Int32
		var wg sync.WaitGroup
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := registry.Acquire(t.Context(), itemID); err == nil {
					granted.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), granted.Load())
	})

	t.Run("should keep expired markers until purged", func(t *testing.T) {
		registry := memory.NewInFlightRegistry(10*time.Millisecond)
		for range 3 {
			_, err := registry.Acquire(t.Context(), kernel.NewUUID())
			require.NoError(t, err)
		}
		time.Sleep(50 * time.Millisecond)

		assert.Equal(t, 3, registry.Purge(), "nothing but Purge removes expired markers")
		assert.Equal(t, 0, registry.Purge())
	})
}
