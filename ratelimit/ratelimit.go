// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ratelimit keeps one token bucket per client key, usually a client
// IP. Idle buckets are dropped after a TTL.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	last    time.Time
}

// LimiterMap hands out per-key limiters allowing perMinute events with the
// given burst. A non-positive perMinute disables limiting.
type LimiterMap struct {
	mu        sync.Mutex
	limiters  map[string]*entry
	perMinute int
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func New(perMinute, burst int, ttl time.Duration) *LimiterMap {
	if burst < 1 {
		burst = 1
	}
	return &LimiterMap{
		limiters:  make(map[string]*entry),
		perMinute: perMinute,
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether one more event for key fits in its bucket
func (l *LimiterMap) Allow(key string) bool {
	if l.perMinute <= 0 {
		return true
	}

	l.mu.Lock()
	now := l.now()
	l.sweep(now)
	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst)}
		l.limiters[key] = e
	}
	e.last = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// sweep drops idle entries at most once per TTL. Callers hold mu.
func (l *LimiterMap) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.ttl {
		return
	}
	for key, e := range l.limiters {
		if now.Sub(e.last) > l.ttl {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys
func (l *LimiterMap) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
