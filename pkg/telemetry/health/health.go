// Package health exposes liveness and readiness probe endpoints.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"nimbus-hq/nimbus/pkg/gateway"
)

// Checker serves liveness and readiness probes. Liveness is a process-alive
// check; readiness additionally reports whether the gateway cache preload
// has completed.
type Checker struct {
	ready atomic.Bool
	cache *gateway.ConfigCache
}

// NewChecker creates a health checker. The cache may be nil, in which case
// cache diagnostics are omitted from responses.
func NewChecker(cache *gateway.ConfigCache) *Checker {
	return &Checker{cache: cache}
}

// SetReady marks the process ready to serve traffic. Called once preload
// has finished (successfully or not — a cold cache still serves).
func (c *Checker) SetReady() {
	c.ready.Store(true)
}

// LivenessHandler reports whether the process is alive. Always 200.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadinessHandler reports whether startup has completed. Returns 503 until
// SetReady is called, 200 afterwards, with cache stats when available.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if c.cache != nil {
			body["cache"] = c.cache.Stats()
		}

		if !c.ready.Load() {
			body["status"] = "starting"
			writeStatus(w, http.StatusServiceUnavailable, body)
			return
		}

		body["status"] = "ready"
		writeStatus(w, http.StatusOK, body)
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
