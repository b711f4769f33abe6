package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
)

// ============================================================
// 文章浏览数计数
// ============================================================
//
// 单篇读取只在 Redis 上 INCR，不直接写库，
// 由 ViewSyncJob 周期性取走增量并批量回写 MySQL

const viewKeyPrefix = "post:views:"

func viewKey(postID int64) string {
	return viewKeyPrefix + strconv.FormatInt(postID, 10)
}

// IncrPostView 文章浏览数加一
func IncrPostView(ctx context.Context, client *redis.Client, postID int64) error {
	return client.Incr(ctx, viewKey(postID)).Err()
}

// 取走并清零一个计数 key，保证"读取+删除"原子
var drainScript = `
	local v = redis.call("GET", KEYS[1])
	if v then
		redis.call("DEL", KEYS[1])
	end
	return v
`

// DrainPostViews 取走所有文章的浏览数增量，返回 postID -> 增量
func DrainPostViews(ctx context.Context, client *redis.Client) (map[int64]int64, error) {
	keys, err := client.Keys(ctx, viewKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	deltas := make(map[int64]int64, len(keys))
	for _, key := range keys {
		raw, err := client.Eval(ctx, drainScript, []string{key}).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return deltas, err
		}

		value, ok := raw.(string)
		if !ok {
			continue
		}

		delta, err := strconv.ParseInt(value, 10, 64)
		if err != nil || delta == 0 {
			continue
		}

		postID, err := strconv.ParseInt(strings.TrimPrefix(key, viewKeyPrefix), 10, 64)
		if err != nil {
			continue
		}

		deltas[postID] += delta
	}

	return deltas, nil
}
