package realtime

import (
	"sync"
	"time"
)

// rateLimiter caps inbound events per connection to a fixed budget per
// window. Chat traffic is bursty but low-volume, so a plain counter that
// resets each window is enough; there is no need to smooth the refill.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	used   int
	reset  time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		reset:  time.Now().Add(window),
	}
}

// allow consumes one unit of the current window's budget
func (rl *rateLimiter) allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if !now.Before(rl.reset) {
		rl.used = 0
		rl.reset = now.Add(rl.window)
	}

	if rl.used >= rl.limit {
		return false
	}
	rl.used++
	return true
}
