package providers

import "net/http"

// Gateway-control header names. Headers under this prefix are consumed by
// the proxy itself and never forwarded upstream.
const (
	// AuthHeader carries the gateway bearer token ("cf-aig-authorization").
	AuthHeader = "cf-aig-authorization"

	// ControlHeaderPrefix marks all gateway-control headers.
	ControlHeaderPrefix = "cf-aig-"
)

// Adapter translates a gateway-relative request into a provider-native
// request: a target URL plus a transformed header set. Adapters are
// stateless strategy objects, one instance per provider family, safe to
// share across concurrent requests.
type Adapter interface {
	// Name returns the adapter family name (e.g., "generic", "azure").
	Name() string

	// BuildTargetURL constructs the upstream URL for a request.
	//
	// accountID is the caller's account identifier, provider the provider
	// name token from the route, subPath everything after the provider
	// segment, and rawQuery the original request's query string without the
	// leading "?" (may be empty).
	//
	// Returns an *UnsupportedProviderError or *InvalidPathError when the
	// request cannot be mapped to an upstream URL.
	BuildTargetURL(accountID, provider, subPath, rawQuery string) (string, error)

	// TransformHeaders returns the header set to send upstream. The input is
	// never modified; the transform is idempotent, so applying it to its own
	// output yields the same result.
	TransformHeaders(h http.Header) http.Header
}

// stripControlHeaders returns a copy of h with the gateway-control headers
// and the inbound Host header removed. Every header whose name starts with
// the gateway-control prefix (case-insensitively) is dropped; everything
// else passes through unchanged.
func stripControlHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for name, values := range h {
		if isControlHeader(name) || http.CanonicalHeaderKey(name) == "Host" {
			continue
		}
		cp := make([]string, len(values))
		copy(cp, values)
		out[name] = cp
	}
	return out
}

// isControlHeader reports whether name is a gateway-control header,
// matching case-insensitively.
func isControlHeader(name string) bool {
	if len(name) < len(ControlHeaderPrefix) {
		return false
	}
	for i := 0; i < len(ControlHeaderPrefix); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != ControlHeaderPrefix[i] {
			return false
		}
	}
	return true
}
