package throttle

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidLimiterType reports that the configured limiter value is none of
// the recognized shapes. It surfaces on the first evaluation, not at attach
// time, because the value is opaque configuration until actually exercised.
var ErrInvalidLimiterType = errors.New("throttle: limiter is neither a RateLimiter, a limiter func, nor a named handle")

// ErrLimiterNotFound reports that a named handle resolved against a registry
// with no limiter registered under that name.
var ErrLimiterNotFound = errors.New("throttle: no limiter registered")

// ConfigurationError reports an invalid attach-time configuration. It is
// always returned synchronously from New, before any request is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("throttle: invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RateLimitExceeded is the terminal outcome of a denied admission: immediate
// in Error mode, after the retry budget is spent in Block mode. Key is the
// throttling key the denial was scoped to and RetryAfterMs the last delay the
// limiter suggested.
type RateLimitExceeded struct {
	Key          string
	RetryAfterMs int64
}

func (e *RateLimitExceeded) Error() string {
	return fmt.Sprintf("throttle: rate limit exceeded for key %q, retry after %dms", e.Key, e.RetryAfterMs)
}

// RetryAfter returns the suggested delay as a duration.
func (e *RateLimitExceeded) RetryAfter() time.Duration {
	return time.Duration(e.RetryAfterMs) * time.Millisecond
}
