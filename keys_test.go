package throttle

import (
	"net/http"
	"net/url"
	"testing"
)

func mustRequest(t *testing.T, rawurl string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestKeyByHost(t *testing.T) {
	req := mustRequest(t, "https://api.example.com/v1/items")
	if got := KeyByHost(req); got != "api.example.com" {
		t.Fatalf("host key = %q, want api.example.com", got)
	}
}

func TestKeyByHostStripsPort(t *testing.T) {
	req := mustRequest(t, "https://api.example.com:8443/v1/items")
	if got := KeyByHost(req); got != "api.example.com" {
		t.Fatalf("host key = %q, want api.example.com", got)
	}
}

func TestKeyByHostFallsBackToRequestHost(t *testing.T) {
	req := &http.Request{
		URL:  &url.URL{Path: "/v1/items"},
		Host: "fallback.example.com:80",
	}
	if got := KeyByHost(req); got != "fallback.example.com" {
		t.Fatalf("host key = %q, want fallback.example.com", got)
	}
}

func TestKeyByHostUnknownSentinel(t *testing.T) {
	if got := KeyByHost(nil); got != "unknown" {
		t.Fatalf("nil request host key = %q, want unknown", got)
	}
	req := &http.Request{URL: &url.URL{Path: "/x"}}
	if got := KeyByHost(req); got != "unknown" {
		t.Fatalf("hostless request key = %q, want unknown", got)
	}
}

func TestKeyByPath(t *testing.T) {
	req := mustRequest(t, "https://api.example.com/v1/items")
	if got := KeyByPath(req); got != "/v1/items" {
		t.Fatalf("path key = %q, want /v1/items", got)
	}
}

func TestKeyByPathDefaultsToSlash(t *testing.T) {
	req := mustRequest(t, "https://api.example.com")
	if got := KeyByPath(req); got != "/" {
		t.Fatalf("empty path key = %q, want /", got)
	}
	if got := KeyByPath(nil); got != "/" {
		t.Fatalf("nil request path key = %q, want /", got)
	}
}

func TestKeyByHostAndPathIsConcatenation(t *testing.T) {
	urls := []string{
		"https://api.example.com/v1/items?page=2",
		"http://api.example.com:8080",
		"https://other.example.com/",
	}
	for _, raw := range urls {
		req := mustRequest(t, raw)
		want := KeyByHost(req) + KeyByPath(req)
		if got := KeyByHostAndPath(req); got != want {
			t.Errorf("%s: host_and_path = %q, want %q", raw, got, want)
		}
	}
	if got := KeyByHostAndPath(nil); got != "unknown/" {
		t.Fatalf("nil request host_and_path = %q, want unknown/", got)
	}
}

func TestKeyByURLRoundTrips(t *testing.T) {
	req := mustRequest(t, "https://api.example.com:8443/v1/items?page=2&sort=asc")
	key := KeyByURL(req)
	parsed, err := url.Parse(key)
	if err != nil {
		t.Fatalf("reparse %q: %v", key, err)
	}
	if parsed.Scheme != req.URL.Scheme || parsed.Host != req.URL.Host {
		t.Fatalf("scheme/host mismatch: %q vs %q", key, req.URL.String())
	}
	if parsed.Path != req.URL.Path || parsed.RawQuery != req.URL.RawQuery {
		t.Fatalf("path/query mismatch: %q vs %q", key, req.URL.String())
	}
}

func TestKeyByURLUnknownSentinel(t *testing.T) {
	if got := KeyByURL(nil); got != "unknown" {
		t.Fatalf("nil request url key = %q, want unknown", got)
	}
}

func TestBindKeyAppendsExtras(t *testing.T) {
	fn := func(req *http.Request, extra ...string) string {
		key := KeyByHost(req)
		for _, e := range extra {
			key += ":" + e
		}
		return key
	}
	bound := BindKey(fn, "tenant-a", "eu")
	req := mustRequest(t, "https://api.example.com/v1/items")
	if got := bound(req); got != "api.example.com:tenant-a:eu" {
		t.Fatalf("bound key = %q", got)
	}
}

func TestBindKeyNilFunc(t *testing.T) {
	if BindKey(nil) != nil {
		t.Fatal("BindKey(nil) should yield nil so attach validation rejects it")
	}
}

func TestResolveKeyFuncUnknownName(t *testing.T) {
	if _, err := resolveKeyFunc("bogus"); err == nil {
		t.Fatal("expected error for unknown strategy name")
	}
}
