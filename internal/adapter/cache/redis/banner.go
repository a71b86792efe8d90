package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	expiry time.Duration
}

func NewRedisCache(client *redis.Client, expirySeconds int) *redisCache {
	return &redisCache{
		client: client,
		expiry: time.Duration(expirySeconds) * time.Second,
	}
}

func placementKey(placement entity.Placement) string {
	return fmt.Sprintf("placement:%s", placement)
}

func (c *redisCache) Set(ctx context.Context, placement entity.Placement, banners []entity.Banner) error {
	body, err := json.Marshal(banners)
	if err != nil {
		slog.Error("error marshalling banners for redis", "error", err)
		return err
	}

	err = c.client.Set(ctx, placementKey(placement), body, c.expiry).Err()
	if err != nil {
		slog.Error("error setting placement cache in redis", "error", err)
		return err
	}

	return nil
}

func (c *redisCache) Get(ctx context.Context, placement entity.Placement) ([]entity.Banner, error) {
	body, err := c.client.Get(ctx, placementKey(placement)).Result()
	if err != nil {
		return nil, err
	}

	var banners []entity.Banner
	err = json.Unmarshal([]byte(body), &banners)
	if err != nil {
		slog.Error("error unmarshalling result from redis", "error", err)
		return nil, err
	}

	return banners, nil
}

// Invalidate drops the cached candidate set after an admin write so the
// next read re-fetches from storage.
func (c *redisCache) Invalidate(ctx context.Context, placements ...entity.Placement) error {
	keys := make([]string, 0, len(placements))
	for _, p := range placements {
		keys = append(keys, placementKey(p))
	}

	err := c.client.Del(ctx, keys...).Err()
	if err != nil {
		slog.Error("error invalidating placement cache in redis", "error", err)
		return err
	}

	return nil
}
