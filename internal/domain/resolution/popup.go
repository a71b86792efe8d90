package resolution

import (
	"context"
	"fmt"
	"time"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

// DefaultPopupDelay is applied when a popup banner carries no delay of
// its own, in milliseconds.
const DefaultPopupDelay = 2000

// MarkerStore remembers, per browsing session, which popups were
// already dismissed. Implementations are swappable (redis, in-memory);
// a zero TTL means the marker never expires on its own.
type MarkerStore interface {
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, ttl time.Duration) error
}

// MarkerKey builds the per-session dismiss-marker key for a banner.
func MarkerKey(sessionID, bannerID string) string {
	return fmt.Sprintf("%s:popup_%s", sessionID, bannerID)
}

// MarkerTTL maps a popup frequency to the lifetime of its dismiss
// marker. once_per_session markers live for the session lifetime,
// once_per_day markers expire after 24 hours, and always sets no
// marker at all (ok == false).
func MarkerTTL(freq entity.PopupFrequency, sessionTTL time.Duration) (time.Duration, bool) {
	switch freq {
	case entity.FreqOncePerDay:
		return 24 * time.Hour, true
	case entity.FreqAlways:
		return 0, false
	default:
		return sessionTTL, true
	}
}

// Gate decides whether a popup may be shown to a session and records
// dismissals.
type Gate struct {
	store      MarkerStore
	sessionTTL time.Duration
}

func NewGate(store MarkerStore, sessionTTL time.Duration) *Gate {
	return &Gate{store: store, sessionTTL: sessionTTL}
}

// Allow reports whether the popup may be scheduled for this session.
// Banners with frequency always skip the marker check entirely.
func (g *Gate) Allow(ctx context.Context, sessionID string, b entity.Banner) (bool, error) {
	if b.PopupFrequency == entity.FreqAlways {
		return true, nil
	}

	shown, err := g.store.Has(ctx, MarkerKey(sessionID, b.BannerID))
	if err != nil {
		return false, err
	}
	return !shown, nil
}

// Dismiss transitions the popup to Shown for this session, per the
// banner's frequency.
func (g *Gate) Dismiss(ctx context.Context, sessionID string, b entity.Banner) error {
	ttl, ok := MarkerTTL(b.PopupFrequency, g.sessionTTL)
	if !ok {
		return nil
	}
	return g.store.Set(ctx, MarkerKey(sessionID, b.BannerID), ttl)
}

// Delay returns the banner's popup delay. An explicit zero means
// "show immediately"; only a missing (negative) value falls back to
// the default.
func Delay(b entity.Banner) time.Duration {
	if b.PopupDelay < 0 {
		return DefaultPopupDelay * time.Millisecond
	}
	return time.Duration(b.PopupDelay) * time.Millisecond
}

// Timer schedules a popup to fire after its delay. Cancel guarantees
// the callback never runs afterwards, even if the delay has elapsed on
// the wall clock but the callback has not been dispatched yet.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Schedule starts the popup timer. show runs at most once, after delay,
// unless the context is cancelled or Cancel is called first.
func Schedule(ctx context.Context, delay time.Duration, show func()) *Timer {
	ctx, cancel := context.WithCancel(ctx)
	t := &Timer{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			select {
			case <-ctx.Done():
				return
			default:
			}
			show()
		case <-ctx.Done():
		}
	}()

	return t
}

// Cancel stops the timer and waits until it is certain the callback
// either ran already or never will.
func (t *Timer) Cancel() {
	t.cancel()
	<-t.done
}
