package crawler

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitSettings configures token-bucket rate limiting per host, layered on
// top of the politeness delay.
type RateLimitSettings struct {
	Requests int
	Window   time.Duration
}

// Limiter enforces politeness before every outbound fetch: a randomized delay
// drawn from [min, max], plus an optional per-host token bucket. The delay is
// a rate-limiting policy, not a concurrency primitive.
type Limiter struct {
	delayMin time.Duration
	delayMax time.Duration

	rateCfg     RateLimitSettings
	rateEnabled bool

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiter creates a limiter with the given delay interval and optional
// per-host rate limit.
func NewLimiter(delayMin, delayMax time.Duration, rateCfg RateLimitSettings) *Limiter {
	if delayMax < delayMin {
		delayMax = delayMin
	}
	l := &Limiter{delayMin: delayMin, delayMax: delayMax}
	if rateCfg.Requests > 0 && rateCfg.Window > 0 {
		l.rateEnabled = true
		l.rateCfg = rateCfg
		l.limiters = make(map[string]*rate.Limiter)
	}
	return l
}

// Wait blocks for the politeness delay and any per-host rate limit, or until
// the context is cancelled.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l == nil {
		return nil
	}

	if sleep := l.jitter(); sleep > 0 {
		timer := time.NewTimer(sleep)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if l.rateEnabled && host != "" {
		return l.hostLimiter(strings.ToLower(host)).Wait(ctx)
	}
	return nil
}

func (l *Limiter) jitter() time.Duration {
	if l.delayMax <= 0 {
		return 0
	}
	if span := l.delayMax - l.delayMin; span > 0 {
		return l.delayMin + rand.N(span)
	}
	return l.delayMin
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[host]
	if ok {
		return limiter
	}
	interval := l.rateCfg.Window / time.Duration(l.rateCfg.Requests)
	if interval <= 0 {
		interval = time.Millisecond
	}
	limiter = rate.NewLimiter(rate.Every(interval), l.rateCfg.Requests)
	l.limiters[host] = limiter
	return limiter
}
