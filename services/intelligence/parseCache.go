package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"slotboard/models"
)

const parseCachePrefix = "ai:parse:"

// RedisParseCache remembers recent parse results per requester so repeated
// submissions of the same text skip the model call.
type RedisParseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisParseCache(client *redis.Client, ttl time.Duration) *RedisParseCache {
	return &RedisParseCache{client: client, ttl: ttl}
}

func parseCacheKey(requesterID, text string) string {
	sum := sha256.Sum256([]byte(text))
	return parseCachePrefix + requesterID + ":" + hex.EncodeToString(sum[:8])
}

func (s *RedisParseCache) Get(ctx context.Context, requesterID, text string) ([]models.ProposedSlot, bool) {
	data, err := s.client.Get(ctx, parseCacheKey(requesterID, text)).Result()
	if err != nil {
		return nil, false
	}
	var proposals []models.ProposedSlot
	if err := json.Unmarshal([]byte(data), &proposals); err != nil {
		return nil, false
	}
	return proposals, true
}

func (s *RedisParseCache) Set(ctx context.Context, requesterID, text string, proposals []models.ProposedSlot) error {
	b, err := json.Marshal(proposals)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, parseCacheKey(requesterID, text), b, s.ttl).Err()
}
