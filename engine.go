package throttle

import (
	"context"
	"net/http"
	"time"
)

// Admit runs one admission attempt for req. It returns nil when the limiter
// allows, a *RateLimitExceeded when the deny policy is exhausted, ctx.Err()
// when the context is cancelled during a backoff wait, and any limiter or
// gateway error unchanged.
//
// Exactly one decision is consulted per evaluation; in block mode each retry
// is a fresh evaluation of the same key, never a replay, so every retry may
// observe a different delay. With MaxRetries = N the limiter is evaluated at
// most N+1 times before giving up.
func (t *Throttler) Admit(ctx context.Context, req *http.Request) error {
	key := t.keyFn(req)
	remaining := t.maxRetries
	for {
		dec, err := t.eval(ctx, key)
		if err != nil {
			return err
		}
		if dec.Allowed {
			return nil
		}
		if t.mode == ModeError || remaining <= 0 {
			if t.mode == ModeBlock {
				t.logger.Warn("throttle: retries exhausted",
					"key", key, "retry_after_ms", dec.RetryAfterMs, "max_retries", t.maxRetries)
			}
			return &RateLimitExceeded{Key: key, RetryAfterMs: dec.RetryAfterMs}
		}
		remaining--
		t.logger.Debug("throttle: denied, backing off",
			"key", key, "wait_ms", dec.RetryAfterMs, "retries_left", remaining)
		if err := t.sleep(ctx, time.Duration(dec.RetryAfterMs)*time.Millisecond); err != nil {
			return err
		}
	}
}

// sleepContext waits for d on the caller's goroutine only. Cancellation of
// ctx ends the wait immediately.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
