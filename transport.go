package throttle

import (
	"net/http"
)

// Transport is an http.RoundTripper that admits every request through a
// Throttler before handing it to the base transport. Denied requests are
// never sent; the typed error flows back through the client call.
type Transport struct {
	throttler *Throttler
	base      http.RoundTripper
}

// NewTransport builds a throttled transport around base. A nil base falls
// back to http.DefaultTransport.
func NewTransport(cfg Config, base http.RoundTripper) (*Transport, error) {
	th, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{throttler: th, base: base}, nil
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.throttler.Admit(req.Context(), req); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
