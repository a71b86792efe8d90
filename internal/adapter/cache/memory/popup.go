package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/resolution"
)

var _ resolution.MarkerStore = new(markerStore)

// markerStore is the in-process MarkerStore used when no redis is
// configured, and by tests. Expired markers are dropped lazily on read.
type markerStore struct {
	mu      sync.Mutex
	markers map[string]time.Time
	now     func() time.Time
}

func NewMarkerStore() *markerStore {
	return &markerStore{
		markers: make(map[string]time.Time),
		now:     time.Now,
	}
}

// NewMarkerStoreWithClock lets tests control marker expiry.
func NewMarkerStoreWithClock(now func() time.Time) *markerStore {
	return &markerStore{
		markers: make(map[string]time.Time),
		now:     now,
	}
}

func (s *markerStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.markers[key]
	if !ok {
		return false, nil
	}
	if !expiry.IsZero() && s.now().After(expiry) {
		delete(s.markers, key)
		return false, nil
	}
	return true, nil
}

func (s *markerStore) Set(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiry time.Time
	if ttl > 0 {
		expiry = s.now().Add(ttl)
	}
	s.markers[key] = expiry
	return nil
}
