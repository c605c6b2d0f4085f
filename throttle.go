// Package throttle is a request-admission layer for outbound HTTP calls. It
// resolves a throttling key for each request, asks a caller-supplied rate
// limiter for a decision, and on denial either fails fast or blocks the
// calling goroutine with limiter-directed backoff until capacity is available
// or the retry budget is spent. The package orchestrates limiters; it does
// not implement one.
package throttle

import (
	"context"
	"log/slog"
	"time"
)

// Mode selects the policy applied when the limiter denies a request.
type Mode string

const (
	// ModeBlock suspends the calling goroutine for the limiter's suggested
	// delay and re-evaluates, up to the retry budget.
	ModeBlock Mode = "block"
	// ModeError fails immediately on the first denial, never waiting.
	ModeError Mode = "error"
)

// DefaultMaxRetries is the retry budget applied when MaxRetries is zero.
const DefaultMaxRetries = 3

// Config is the attach-time surface of one throttle attachment. It is
// consulted, never mutated, on every request.
type Config struct {
	// Limiter is mandatory: a RateLimiter, a plain
	// func(context.Context, string) (Decision, error), or a Handle from a
	// registry. Shape validity is only checked on first evaluation.
	Limiter any

	// KeyBy selects the key strategy: a built-in name (KeyHost, KeyPath,
	// KeyHostAndPath, KeyURL), a KeyFunc, or nil for KeyHost.
	KeyBy any

	// Mode defaults to ModeBlock.
	Mode Mode

	// MaxRetries bounds retries after the initial denial in block mode.
	// Zero selects DefaultMaxRetries; -1 disables retries, as in go-redis.
	MaxRetries int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Throttler admits outgoing requests against a configured limiter.
type Throttler struct {
	keyFn      KeyFunc
	eval       evalFunc
	mode       Mode
	maxRetries int
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// New validates cfg and builds a Throttler. Misconfiguration surfaces here,
// as a *ConfigurationError, before any traffic flows.
func New(cfg Config) (*Throttler, error) {
	if cfg.Limiter == nil {
		return nil, configErrorf("rate_limiter", "required")
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeBlock
	}
	if mode != ModeBlock && mode != ModeError {
		return nil, configErrorf("mode", "invalid value %q, want %q or %q", string(mode), ModeBlock, ModeError)
	}
	retries := cfg.MaxRetries
	switch {
	case retries == 0:
		retries = DefaultMaxRetries
	case retries < 0:
		retries = 0
	}
	keyFn, err := resolveKeyFunc(cfg.KeyBy)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Throttler{
		keyFn:      keyFn,
		eval:       bindLimiter(cfg.Limiter),
		mode:       mode,
		maxRetries: retries,
		logger:     logger,
		sleep:      sleepContext,
	}, nil
}
