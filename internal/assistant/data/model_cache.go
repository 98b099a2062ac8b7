package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/redis"
)

const modelCacheKey = "openai:models"

// ModelCache keeps the remote model list in redis
type ModelCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewModelCache creates a redis backed model cache
func NewModelCache(client *redis.Client) *ModelCache {
	return &ModelCache{
		client: client,
		ttl:    client.Config().ModelCacheTTL,
	}
}

// Get returns the cached models; ok is false on a miss
func (c *ModelCache) Get(ctx context.Context) ([]types.RemoteModel, bool, error) {
	raw, err := c.client.Get(ctx, modelCacheKey)
	if err != nil {
		if redis.IsNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read model cache: %w", err)
	}

	var cached []types.RemoteModel
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		// 缓存内容损坏时按未命中处理
		return nil, false, nil
	}
	return cached, true, nil
}

// Set stores models for the configured TTL
func (c *ModelCache) Set(ctx context.Context, list []types.RemoteModel) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}
	if err := c.client.Set(ctx, modelCacheKey, string(b), c.ttl); err != nil {
		return fmt.Errorf("failed to write model cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list
func (c *ModelCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, modelCacheKey)
}
