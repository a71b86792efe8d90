package cache

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/resolution"
	"github.com/redis/go-redis/v9"
)

var _ resolution.MarkerStore = new(markerStore)

// markerStore keeps popup dismiss markers in redis, one key per
// session+banner, expiring by the banner's frequency TTL.
type markerStore struct {
	client *redis.Client
}

func NewMarkerStore(client *redis.Client) *markerStore {
	return &markerStore{client: client}
}

func (s *markerStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Get(ctx, "dismiss:"+key).Result()
	if err != nil {
		if stdErrors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *markerStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, "dismiss:"+key, "1", ttl).Err()
}
