// Package ratelimit throttles booking creation per client.
package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	BookingsPerHour int           // sustained booking attempts per client (default: 30)
	Burst           int           // attempts allowed back to back (default: 5)
	IdleEvict       time.Duration // drop a client's bucket after this long unused (default: 1h)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		BookingsPerHour: 30,
		Burst:           5,
		IdleEvict:       time.Hour,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type entry struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

// Limiter keeps one token bucket per client.
type Limiter struct {
	config  *Config
	clock   Clock
	limit   rate.Limit
	mu      sync.Mutex
	clients map[int64]*entry

	// Cleanup goroutine management
	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()
	if cfg.BookingsPerHour <= 0 {
		cfg.BookingsPerHour = defaults.BookingsPerHour
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.IdleEvict <= 0 {
		cfg.IdleEvict = defaults.IdleEvict
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		limit:         rate.Every(time.Hour / time.Duration(cfg.BookingsPerHour)),
		clients:       make(map[int64]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// AllowBooking takes a token from the client's bucket. When the bucket is
// empty nothing is consumed and RetryAfter says when the next token is due.
func (l *Limiter) AllowBooking(clientID int64) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.clients[clientID]
	if e == nil {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.config.Burst)}
		l.clients[clientID] = e
	}
	e.lastAt = now

	reservation := e.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return LimitResult{Allowed: false, RetryAfter: time.Hour}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return LimitResult{Allowed: false, RetryAfter: delay}
	}
	return LimitResult{Allowed: true}
}

// Len reports how many clients currently have a bucket.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for clientID, e := range l.clients {
		if now.Sub(e.lastAt) > l.config.IdleEvict {
			delete(l.clients, clientID)
		}
	}
}

// LogRateLimitExceeded logs a throttled booking attempt.
func LogRateLimitExceeded(ctx context.Context, clientID int64, retryAfter time.Duration) {
	log.Ctx(ctx).Warn().
		Str("event", "rate_limit_exceeded").
		Str("client_id", strconv.FormatInt(clientID, 10)).
		Dur("retry_after", retryAfter).
		Msg("Booking rate limit exceeded")
}
