// Package xrate exposes per-key golang.org/x/time/rate token buckets through
// the throttle Hit contract.
package xrate

import (
	"context"
	"sync"
)

import (
	"golang.org/x/time/rate"
)

import (
	throttle "github.com/nanjiek/pixiu-throttle"
)

// Limiter keeps one in-memory token bucket per key. Buckets are created on
// first hit and live for the limiter's lifetime; state is process-local.
type Limiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// New builds a limiter refilling at limit tokens per second with the given
// burst capacity per key.
func New(limit rate.Limit, burst int) *Limiter {
	if limit <= 0 {
		panic("xrate: non-positive limit")
	}
	if burst <= 0 {
		panic("xrate: non-positive burst")
	}
	return &Limiter{
		limit:   limit,
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Hit reserves one token from key's bucket. When the token is not
// immediately available the reservation is cancelled and the wait it would
// have required becomes the suggested retry delay.
func (l *Limiter) Hit(ctx context.Context, key string) (throttle.Decision, error) {
	b := l.bucket(key)
	res := b.Reserve()
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		ms := delay.Milliseconds()
		if ms == 0 {
			ms = 1 // sub-millisecond waits still need a non-zero hint
		}
		return throttle.Deny(ms), nil
	}
	return throttle.Allow(int64(b.Tokens())), nil
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b
}
