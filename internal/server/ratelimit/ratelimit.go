// Package ratelimit throttles expensive API calls per client with token
// buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// PerMinute is the sustained request rate per client
	PerMinute int
	// Burst is the bucket capacity; zero means PerMinute
	Burst int
	// IdleTTL is how long an unused client bucket is kept
	IdleTTL time.Duration
}

// DefaultConfig allows six pipeline runs per minute per client with a burst
// of two.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		PerMinute: 6,
		Burst:     2,
		IdleTTL:   10 * time.Minute,
	}
}

// Info describes the outcome of an Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client.
type Limiter struct {
	config  Config
	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

// NewLimiter creates a limiter. A disabled or non-positive rate config allows
// everything.
func NewLimiter(config Config) *Limiter {
	if config.Burst <= 0 {
		config.Burst = config.PerMinute
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &Limiter{
		config:  config,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow consumes a token for clientID if one is available.
func (l *Limiter) Allow(clientID string) Info {
	if !l.config.Enabled || l.config.PerMinute <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(float64(l.config.PerMinute)/60), l.config.Burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now

	info := Info{Limit: l.config.PerMinute}
	reservation := c.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}
	info.Remaining = int(c.limiter.TokensAt(now))
	if info.Remaining < 0 {
		info.Remaining = 0
	}
	return info
}

// Clients returns the number of tracked client buckets.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep drops buckets idle for longer than IdleTTL. Callers hold mu.
func (l *Limiter) sweep(now time.Time) {
	for id, c := range l.clients {
		if now.Sub(c.lastSeen) > l.config.IdleTTL {
			delete(l.clients, id)
		}
	}
}
