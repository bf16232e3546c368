package proxy

import (
	"net/http"
	"strings"

	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/providers"
)

// bearerPrefix is matched case-sensitively, single space included.
const bearerPrefix = "Bearer "

// Authorize applies the gateway-level bearer-token check. It returns nil
// when the request is allowed and a terminal error otherwise.
//
// Gateways with RequiresAuth disabled allow every request regardless of
// headers. Otherwise the cf-aig-authorization header must be present, must
// carry the "Bearer " prefix, and the remaining token must be non-blank.
// The token value is not checked against any allow-list.
func Authorize(cfg *gateway.Config, headers http.Header) *APIError {
	if !cfg.RequiresAuth {
		return nil
	}

	value := headers.Get(providers.AuthHeader)
	if value == "" {
		return NewUnauthorizedError(providers.AuthHeader + " header is required")
	}
	if !strings.HasPrefix(value, bearerPrefix) {
		return NewUnauthorizedError(providers.AuthHeader + ` header must start with "Bearer "`)
	}

	token := value[len(bearerPrefix):]
	if strings.TrimSpace(token) == "" {
		return NewForbiddenError("invalid authorization token")
	}

	return nil
}
