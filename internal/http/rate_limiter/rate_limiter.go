package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	limit rate.Limit = 0.2 // one request every five seconds
	burst            = 2
)

// Configure sets the per-client rate and burst and forgets existing visitors.
func Configure(r rate.Limit, b int) {
	mu.Lock()
	defer mu.Unlock()

	if r > 0 {
		limit = r
	}
	if b > 0 {
		burst = b
	}
	visitors = make(map[string]*clientLimiter)
}

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(limit, burst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartVisitorCleanupLoop drops visitors idle for longer than ttl, checking
// every interval until ctx is done.
func StartVisitorCleanupLoop(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removeIdle(ttl)
		}
	}
}

func removeIdle(ttl time.Duration) int {
	mu.Lock()
	defer mu.Unlock()

	removed := 0
	for ip, v := range visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(visitors, ip)
			removed++
		}
	}
	return removed
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
