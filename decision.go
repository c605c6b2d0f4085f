package throttle

// Decision is a limiter's verdict for a single evaluation of a key.
//
// An allowing decision carries Count, the limiter's own bookkeeping value
// (hit number, remaining tokens, whatever the backend tracks); the engine
// treats it as informational and discards it. A denying decision carries
// RetryAfterMs, the limiter's suggested wait in milliseconds before the key
// may be tried again.
type Decision struct {
	Allowed      bool
	Count        int64
	RetryAfterMs int64
}

// Allow builds an allowing decision with the limiter's bookkeeping value.
func Allow(count int64) Decision {
	return Decision{Allowed: true, Count: count}
}

// Deny builds a denying decision. Negative delays are clamped to zero.
func Deny(retryAfterMs int64) Decision {
	if retryAfterMs < 0 {
		retryAfterMs = 0
	}
	return Decision{Allowed: false, RetryAfterMs: retryAfterMs}
}
