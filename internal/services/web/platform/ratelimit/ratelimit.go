// Package ratelimit throttles abuse-prone form submissions per client and
// route with token buckets.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"golang.org/x/time/rate"
)

const defaultIdleTTL = 10 * time.Minute

// Config controls bucket size and refill. A non-positive RPS disables
// limiting.
type Config struct {
	RPS            float64
	Burst          int
	IdleTTL        time.Duration
	TrustForwarded bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key and evicts idle buckets.
//
// Safe for concurrent use.
type Limiter struct {
	cfg       Config
	now       func() time.Time
	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time
}

// New builds a limiter for cfg.
func New(cfg Config) *Limiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	return &Limiter{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Enabled reports whether the limiter throttles anything.
func (l *Limiter) Enabled() bool {
	return l != nil && l.cfg.RPS > 0
}

// Allow consumes one token for key and reports whether the call may proceed.
func (l *Limiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evictIdleLocked(now)
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// AllowRequest keys the bucket on client address, method and path.
func (l *Limiter) AllowRequest(r *http.Request) bool {
	if !l.Enabled() || r == nil {
		return true
	}
	return l.Allow(Key(r, l.cfg.TrustForwarded))
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) evictIdleLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) >= l.cfg.IdleTTL {
			delete(l.entries, key)
		}
	}
}

// Key returns the bucket key for r.
func Key(r *http.Request, trustForwarded bool) string {
	return httpx.ClientIP(r, trustForwarded) + " " + r.Method + " " + r.URL.Path
}
