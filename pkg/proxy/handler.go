package proxy

import (
	"log/slog"
	"net/http"
	"time"

	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/providers"
)

// Handler is the request router. Each inbound request runs the pipeline:
// route parsing, gateway resolution, the authorization gate, adapter
// selection, and the upstream forward. Every stage owns its terminal
// response; once a stage fails, no later stage runs.
type Handler struct {
	cache     *gateway.ConfigCache
	adapters  *providers.AdapterSet
	forwarder *Forwarder
	logger    *slog.Logger
}

// NewHandler creates a proxy handler. The cache and adapter set are shared
// across requests; both are safe for concurrent use.
func NewHandler(cache *gateway.ConfigCache, adapters *providers.AdapterSet, upstreamTimeout time.Duration) *Handler {
	return &Handler{
		cache:     cache,
		adapters:  adapters,
		forwarder: NewForwarder(upstreamTimeout),
		logger:    slog.Default().With("component", "proxy.handler"),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, apiErr := ParseRoute(r.URL.Path)
	if apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	cfg, err := h.cache.Get(r.Context(), route.GatewayID)
	if err != nil {
		WriteError(w, FromError(err))
		return
	}

	if apiErr := Authorize(cfg, r.Header); apiErr != nil {
		WriteError(w, apiErr)
		return
	}

	adapter := h.adapters.Select(route.Provider)
	targetURL, err := adapter.BuildTargetURL(route.AccountID, route.Provider, route.SubPath, r.URL.RawQuery)
	if err != nil {
		WriteError(w, FromError(err))
		return
	}
	headers := adapter.TransformHeaders(r.Header)

	h.logger.Debug("forwarding request",
		"gateway_id", route.GatewayID,
		"provider", route.Provider,
		"adapter", adapter.Name(),
		"method", r.Method,
	)

	if apiErr := h.forwarder.Forward(w, r, targetURL, headers); apiErr != nil {
		WriteError(w, apiErr)
	}
}
