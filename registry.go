package throttle

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Registry holds process-wide named limiter instances. The registry only
// hands out references; limiter lifecycle stays with whoever registered
// them. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	limiters map[string]RateLimiter
}

func NewRegistry() *Registry {
	return &Registry{limiters: make(map[string]RateLimiter)}
}

// Register binds a limiter under a name, replacing any previous binding.
func (r *Registry) Register(name string, l RateLimiter) {
	if l == nil {
		panic("throttle: nil limiter")
	}
	name = normalizeName(name)
	if name == "" {
		panic("throttle: empty limiter name")
	}
	r.mu.Lock()
	r.limiters[name] = l
	r.mu.Unlock()
}

// Lookup returns the limiter registered under name, if any.
func (r *Registry) Lookup(name string) (RateLimiter, bool) {
	r.mu.RLock()
	l, ok := r.limiters[normalizeName(name)]
	r.mu.RUnlock()
	return l, ok
}

// Named returns a handle to the limiter registered under name. Resolution
// happens on every evaluation, so registering after attach but before the
// first request is fine.
func (r *Registry) Named(name string) Handle {
	return Handle{name: normalizeName(name), registry: r}
}

// Handle is a by-name reference to a limiter in a registry, resolved
// dynamically at call time.
type Handle struct {
	name     string
	registry *Registry
}

// Name returns the normalized name the handle resolves.
func (h Handle) Name() string { return h.name }

func (h Handle) hit(ctx context.Context, key string) (Decision, error) {
	reg := h.registry
	if reg == nil {
		reg = defaultRegistry
	}
	l, ok := reg.Lookup(h.name)
	if !ok {
		return Decision{}, fmt.Errorf("%w under name %q", ErrLimiterNotFound, h.name)
	}
	return l.Hit(ctx, key)
}

var defaultRegistry = NewRegistry()

// Register binds a limiter in the package default registry.
func Register(name string, l RateLimiter) {
	defaultRegistry.Register(name, l)
}

// Named returns a handle resolved against the package default registry.
func Named(name string) Handle {
	return Handle{name: normalizeName(name)}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
