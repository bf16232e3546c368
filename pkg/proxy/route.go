package proxy

import (
	"strings"
)

// RoutePrefix is the path prefix all proxied requests must carry.
const RoutePrefix = "/v1/"

// Route holds the decoded segments of a proxied request path.
type Route struct {
	// AccountID is the first path segment after the prefix.
	AccountID string

	// GatewayID identifies the gateway configuration to resolve.
	GatewayID string

	// Provider is the provider-name token used for adapter selection.
	Provider string

	// SubPath is everything after the provider segment, without a leading
	// slash. May be empty.
	SubPath string
}

// ParseRoute decodes a request path of the form
// /v1/{accountId}/{gatewayId}/{providerName}/{providerPath...}.
// The query string is not part of the path and is handled separately.
func ParseRoute(path string) (Route, *APIError) {
	if !strings.HasPrefix(path, RoutePrefix) {
		return Route{}, NewValidationError("path must start with " + RoutePrefix)
	}

	rest := strings.TrimPrefix(path, RoutePrefix)
	parts := strings.SplitN(rest, "/", 4)

	route := Route{}
	if len(parts) > 0 {
		route.AccountID = parts[0]
	}
	if len(parts) > 1 {
		route.GatewayID = parts[1]
	}
	if len(parts) > 2 {
		route.Provider = parts[2]
	}
	if len(parts) > 3 {
		route.SubPath = parts[3]
	}

	if route.AccountID == "" || route.GatewayID == "" || route.Provider == "" {
		return Route{}, NewValidationError("path must include account_id, gateway_id, and provider_name")
	}

	return route, nil
}
