package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/brijdaniel/RR-backend/config"

	"github.com/redis/go-redis/v9"
)

// Regret indexes read by the network endpoints are cached in Redis when a
// client is configured. The cache is write-through-invalidated by score
// recalculation, with a short TTL as a backstop against drift. Without Redis
// every read falls through to the database.

const indexCacheTTL = time.Minute

func indexCacheKey(userID uint, day string) string {
	return fmt.Sprintf("rr:index:%d:%s", userID, day)
}

func cachedRegretIndex(ctx context.Context, userID uint, day string) (float64, bool) {
	if config.Rdb == nil {
		return 0, false
	}
	val, err := config.Rdb.Get(ctx, indexCacheKey(userID, day)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

func storeRegretIndex(ctx context.Context, userID uint, day string, score float64) {
	if config.Rdb == nil {
		return
	}
	// Best effort; a failed write just means a cache miss later.
	config.Rdb.Set(ctx, indexCacheKey(userID, day), strconv.FormatFloat(score, 'f', 4, 64), indexCacheTTL)
}

func invalidateIndexCache(userID uint, day string) {
	if config.Rdb == nil {
		return
	}
	config.Rdb.Del(context.Background(), indexCacheKey(userID, day))
}
