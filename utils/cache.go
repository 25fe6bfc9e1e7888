// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"slotboard/config"
)

// AIContextCacheClient is the dedicated client for AI parse caching. The
// adapter's read cache stays in-process, so this is the only redis client.
var AIContextCacheClient *redis.Client

// InitAIContextCache initializes the Redis client for AI parse caching.
func InitAIContextCache() {
	AIContextCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAIDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AIContextCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (AI Cache): %v", err)
	}
}

// GetAIContextCacheClient returns the Redis client for AI parse caching.
func GetAIContextCacheClient() *redis.Client {
	if AIContextCacheClient == nil {
		InitAIContextCache()
	}
	return AIContextCacheClient
}
