package cache

import (
	"context"
	"testing"

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

func TestIncrAndDrainPostViews(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, IncrPostView(ctx, client, 1))
	}
	require.NoError(t, IncrPostView(ctx, client, 2))

	deltas, err := DrainPostViews(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 3, 2: 1}, deltas)

	// 取走即清零，第二次取不到增量
	deltas, err = DrainPostViews(ctx, client)
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestDrainPostViews_Empty(t *testing.T) {
	client := setupRedis(t)

	deltas, err := DrainPostViews(context.Background(), client)
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestDrainPostViews_IgnoresOtherKeys(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session:abc", "1", 0).Err())
	require.NoError(t, IncrPostView(ctx, client, 5))

	deltas, err := DrainPostViews(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{5: 1}, deltas)

	// 不相关的 key 不会被删
	val, err := client.Get(ctx, "session:abc").Result()
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}
