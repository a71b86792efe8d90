package v1

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles the beacon endpoints per client IP with token
// buckets. Stale entries are evicted by a background goroutine every
// 10 minutes.
type RateLimiter struct {
	visitors sync.Map
	rate     rate.Limit
	burst    int
	done     chan struct{}
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:  r,
		burst: burst,
		done:  make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	v, ok := rl.visitors.Load(ip)
	if ok {
		vis := v.(*visitor)
		vis.lastSeen = time.Now()
		return vis.limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.visitors.Store(ip, &visitor{limiter: limiter, lastSeen: time.Now()})
	return limiter
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.visitors.Range(func(key, value any) bool {
				v := value.(*visitor)
				if time.Since(v.lastSeen) > 10*time.Minute {
					rl.visitors.Delete(key)
				}
				return true
			})
		case <-rl.done:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) Do(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
