package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nestora/storefront/internal/domain"
)

// RedisDashboardCache stores short-TTL admin dashboard snapshots.
type RedisDashboardCache struct {
	client *redis.Client
}

// NewRedisDashboardCache creates a dashboard snapshot cache adapter.
func NewRedisDashboardCache(client *redis.Client) *RedisDashboardCache {
	return &RedisDashboardCache{client: client}
}

func (c *RedisDashboardCache) Get(ctx context.Context, key string) (*domain.DashboardSnapshot, error) {
	raw, err := c.client.Get(ctx, "storefront:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var out domain.DashboardSnapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RedisDashboardCache) Put(ctx context.Context, key string, snapshot domain.DashboardSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "storefront:"+key, raw, ttl).Err()
}
