package throttle

import (
	"net"
	"net/http"
	"strings"
)

// Built-in key strategy names accepted by Config.KeyBy and policy files.
const (
	KeyHost        = "host"
	KeyPath        = "path"
	KeyHostAndPath = "host_and_path"
	KeyURL         = "url"
)

// unknownHost is the sentinel key for requests with no resolvable host.
const unknownHost = "unknown"

// KeyFunc derives the throttling key for an outgoing request. Implementations
// must be total: degrade to a sentinel value for malformed input, never fail.
// The request is read-only.
type KeyFunc func(req *http.Request) string

// KeyByHost keys by the request's target host, "unknown" when absent.
func KeyByHost(req *http.Request) string {
	if req == nil {
		return unknownHost
	}
	if req.URL != nil {
		if host := req.URL.Hostname(); host != "" {
			return host
		}
	}
	if host := stripPort(req.Host); host != "" {
		return host
	}
	return unknownHost
}

// KeyByPath keys by the request's path component, "/" when absent.
func KeyByPath(req *http.Request) string {
	if req == nil || req.URL == nil || req.URL.Path == "" {
		return "/"
	}
	return req.URL.Path
}

// KeyByHostAndPath keys by host followed by path. The path contributes the
// leading slash, so no extra separator is inserted.
func KeyByHostAndPath(req *http.Request) string {
	return KeyByHost(req) + KeyByPath(req)
}

// KeyByURL keys by the full normalized address reconstructed from the
// request's URL components, not the original raw input.
func KeyByURL(req *http.Request) string {
	if req == nil || req.URL == nil {
		return unknownHost
	}
	return req.URL.String()
}

// BindKey binds fn to fixed extra arguments appended after the request. A nil
// fn yields a nil KeyFunc, which New rejects at attach time.
func BindKey(fn func(req *http.Request, extra ...string) string, extra ...string) KeyFunc {
	if fn == nil {
		return nil
	}
	return func(req *http.Request) string {
		return fn(req, extra...)
	}
}

var builtinKeyFuncs = map[string]KeyFunc{
	KeyHost:        KeyByHost,
	KeyPath:        KeyByPath,
	KeyHostAndPath: KeyByHostAndPath,
	KeyURL:         KeyByURL,
}

// resolveKeyFunc validates the configured key strategy at attach time.
func resolveKeyFunc(v any) (KeyFunc, error) {
	switch k := v.(type) {
	case nil:
		return KeyByHost, nil
	case string:
		fn, ok := builtinKeyFuncs[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return nil, configErrorf("key_by", "unknown strategy %q, want one of %s, %s, %s, %s",
				k, KeyHost, KeyPath, KeyHostAndPath, KeyURL)
		}
		return fn, nil
	case KeyFunc:
		if k == nil {
			return nil, configErrorf("key_by", "nil key func")
		}
		return k, nil
	case func(req *http.Request) string:
		if k == nil {
			return nil, configErrorf("key_by", "nil key func")
		}
		return k, nil
	default:
		return nil, configErrorf("key_by", "unsupported value of type %T", v)
	}
}

func stripPort(hostport string) string {
	if hostport == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(hostport)
	if err == nil && host != "" {
		return host
	}
	return hostport
}
