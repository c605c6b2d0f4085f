package throttle

import (
	"testing"
)

func TestRegistryNormalizesNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("  GitHub-API ", LimiterFunc(allowAll))

	if _, ok := reg.Lookup("github-api"); !ok {
		t.Fatal("lookup by normalized name failed")
	}
	if _, ok := reg.Lookup("GITHUB-API"); !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatal("lookup of unregistered name succeeded")
	}
}

func TestRegistryReplacesBinding(t *testing.T) {
	reg := NewRegistry()
	first := LimiterFunc(allowAll)
	second := &scriptedLimiter{decisions: []Decision{Deny(1)}}
	reg.Register("svc", first)
	reg.Register("svc", second)

	l, ok := reg.Lookup("svc")
	if !ok {
		t.Fatal("lookup failed")
	}
	if l != RateLimiter(second) {
		t.Fatal("binding was not replaced")
	}
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	reg := NewRegistry()
	assertPanics(t, func() { reg.Register("x", nil) })
	assertPanics(t, func() { reg.Register("   ", LimiterFunc(allowAll)) })
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
}
