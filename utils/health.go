package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. mongoClient is nil when the backing store does not run on Mongo;
// the store is then reported healthy by definition.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool
			for _, client := range redisClients {
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				redisHealth = append(redisHealth, client.Ping(pingCtx).Err() == nil)
				cancel()
			}

			storeOK := true
			if mongoClient != nil {
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				storeOK = mongoClient.Ping(pingCtx, nil) == nil
				cancel()
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Store:     storeOK,
				Redis:     redisHealth,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
