package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"

	database "almanar_backend/internals/databases"
)

const (
	overviewCacheKey = "almanar:stats:overview"
	overviewCacheTTL = 5 * time.Minute
)

// CachedOverview returns the cached dashboard payload, or false on a
// miss. Cache errors are logged and treated as misses.
func CachedOverview(ctx context.Context, out interface{}) bool {
	if database.Redis == nil {
		return false
	}
	raw, err := database.Redis.Get(ctx, overviewCacheKey).Bytes()
	if err != nil {
		return false
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		log.Printf("[WARN] stats cache decode failed: %v", err)
		return false
	}
	return true
}

// StoreOverview caches the dashboard payload, best-effort.
func StoreOverview(ctx context.Context, payload interface{}) {
	if database.Redis == nil {
		return
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, overviewCacheKey, raw, overviewCacheTTL).Err(); err != nil {
		log.Printf("[WARN] stats cache store failed: %v", err)
	}
}

// InvalidateOverview drops the cached dashboard. Every write that can
// move the numbers calls this instead of letting the TTL lag.
func InvalidateOverview(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	if err := database.Redis.Del(ctx, overviewCacheKey).Err(); err != nil {
		log.Printf("[WARN] stats cache invalidation failed: %v", err)
	}
}
