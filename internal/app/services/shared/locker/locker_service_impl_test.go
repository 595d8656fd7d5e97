package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type inMemoryRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newInMemoryRedis() *inMemoryRedis {
	return &inMemoryRedis{data: make(map[string]string)}
}

func (r *inMemoryRedis) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *inMemoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, _ := json.Marshal(value)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = string(raw)
	return nil
}

func (r *inMemoryRedis) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[key], nil
}

func (r *inMemoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	raw, _ := json.Marshal(value)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[key]; exists {
		return false, nil
	}
	r.data[key] = string(raw)
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()
	store := newInMemoryRedis()
	locker := NewLockService(store, zap.NewNop())

	acquired, value, err := locker.TryLock(ctx, "case_admin_action:1", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, value)

	t.Run("Second holder is refused", func(t *testing.T) {
		acquired, _, err := locker.TryLock(ctx, "case_admin_action:1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("Wrong token cannot release", func(t *testing.T) {
		err := locker.Unlock(ctx, "case_admin_action:1", "someone-else")
		assert.Error(t, err)
		stored, _ := store.Get(ctx, "case_admin_action:1")
		assert.NotEmpty(t, stored)
	})

	t.Run("Holder releases", func(t *testing.T) {
		require.NoError(t, locker.Unlock(ctx, "case_admin_action:1", value))
		acquired, _, err := locker.TryLock(ctx, "case_admin_action:1", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("Releasing an expired lock is a no-op", func(t *testing.T) {
		assert.NoError(t, locker.Unlock(ctx, "case_admin_action:missing", value))
	})
}
