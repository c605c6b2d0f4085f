// Package sentinel exposes sentinel-golang flow control through the throttle
// Hit contract. Keys map to sentinel resource names, so flow rules for the
// keys in use must be loaded by the caller, and the sentinel runtime must be
// initialized (api.InitDefault or equivalent) before traffic flows.
package sentinel

import (
	"context"
)

import (
	sentinelapi "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
)

import (
	throttle "github.com/nanjiek/pixiu-throttle"
)

// Limiter adapts sentinel flow control to the throttle contract. Sentinel's
// reject behavior carries no wait hint, so a denial suggests the fixed
// retryAfterMs configured here.
type Limiter struct {
	retryAfterMs int64
}

// New builds the adapter with the delay hint attached to denials.
func New(retryAfterMs int64) *Limiter {
	if retryAfterMs < 0 {
		panic("sentinel: negative retryAfterMs")
	}
	return &Limiter{retryAfterMs: retryAfterMs}
}

// Hit checks the key's flow rules as an outbound entry. Keys with no loaded
// rule pass through, which matches sentinel's own default.
func (l *Limiter) Hit(ctx context.Context, key string) (throttle.Decision, error) {
	entry, blockErr := sentinelapi.Entry(key, sentinelapi.WithTrafficType(base.Outbound))
	if blockErr != nil {
		return throttle.Deny(l.retryAfterMs), nil
	}
	entry.Exit()
	return throttle.Allow(0), nil
}
