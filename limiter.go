package throttle

import (
	"context"
	"fmt"
)

// RateLimiter is the entire contract a conforming limiter must satisfy. Hit
// records one attempt against key and returns the limiter's decision. All
// counting, storage and concurrency safety live behind this interface; the
// engine treats every decision as authoritative.
type RateLimiter interface {
	Hit(ctx context.Context, key string) (Decision, error)
}

// LimiterFunc adapts a plain function to the RateLimiter contract.
type LimiterFunc func(ctx context.Context, key string) (Decision, error)

func (f LimiterFunc) Hit(ctx context.Context, key string) (Decision, error) {
	return f(ctx, key)
}

// evalFunc is the uniform invocation closure the engine calls per attempt.
type evalFunc func(ctx context.Context, key string) (Decision, error)

// bindLimiter resolves the configured limiter value's shape once, at attach
// time, into a single invocation closure. Accepted shapes: a RateLimiter, a
// plain two-argument function, or a Handle resolved per call. Any other
// shape binds to a closure that fails with ErrInvalidLimiterType on its
// first evaluation; the value is opaque configuration until exercised, so
// the error is deliberately not raised at attach time.
func bindLimiter(v any) evalFunc {
	switch l := v.(type) {
	case Handle:
		return l.hit
	case RateLimiter:
		return l.Hit
	case func(ctx context.Context, key string) (Decision, error):
		return l
	default:
		return func(context.Context, string) (Decision, error) {
			return Decision{}, fmt.Errorf("%w (got %T)", ErrInvalidLimiterType, v)
		}
	}
}
