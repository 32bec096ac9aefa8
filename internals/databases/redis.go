package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis dials redis with short timeouts. Redis is optional: when
// REDIS_ADDR is unset the overview cache is simply disabled.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, overview cache disabled")
		return
	}
	Redis = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), overview cache disabled", err)
		Redis = nil
		return
	}
	log.Println("✅ Redis connected.")
}

// RedisHealthy verifies connectivity for the health endpoint.
func RedisHealthy(ctx context.Context) bool {
	if Redis == nil {
		return false
	}
	return Redis.Ping(ctx).Err() == nil
}
