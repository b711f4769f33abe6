package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDistributedLock_TryLock(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	first := NewDistributedLock(client, "test:lock", "holder-1", 30*time.Second)
	second := NewDistributedLock(client, "test:lock", "holder-2", 30*time.Second)

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// 同一把锁被持有期间，其他持有者拿不到
	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, first.Unlock(ctx))

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDistributedLock_UnlockOnlyOwner(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	owner := NewDistributedLock(client, "test:lock", "holder-1", 30*time.Second)
	intruder := NewDistributedLock(client, "test:lock", "holder-2", 30*time.Second)

	ok, err := owner.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// 非持有者释放不掉别人的锁
	require.NoError(t, intruder.Unlock(ctx))

	ok, err = intruder.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDistributedLock_LockRetryExhausted(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	holder := NewPaymentLock(client, 42, "req-1")
	ok, err := holder.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	waiter := NewPaymentLock(client, 42, "req-2")
	err = waiter.Lock(ctx, time.Millisecond, 3)
	assert.ErrorIs(t, err, ErrLockFailed)
}

func TestDistributedLock_LockContextCancelled(t *testing.T) {
	client := setupRedis(t)

	holder := NewPaymentLock(client, 7, "req-1")
	ok, err := holder.TryLock(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	waiter := NewPaymentLock(client, 7, "req-2")
	err = waiter.Lock(ctx, 10*time.Millisecond, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPaymentLock_KeyPerPayment(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	// 不同款项互不影响
	first := NewPaymentLock(client, 1, "req-1")
	second := NewPaymentLock(client, 2, "req-2")

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
