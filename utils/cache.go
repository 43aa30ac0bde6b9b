// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"urbanserve/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. Nil when Redis is not configured;
// consumers must treat a nil client as "caching disabled".
var CacheClient *redis.Client

// InitCache initializes the Redis cache client when REDIS_ADDR is configured.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("Redis not configured, ranking cache disabled")
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis (Cache), caching disabled: %v", err)
		CacheClient = nil
	}
}

// GetCacheClient returns the generic cache client (possibly nil).
func GetCacheClient() *redis.Client {
	return CacheClient
}
