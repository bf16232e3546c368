package middleware

import (
	"net/http"
	"strings"
	"time"

	"nimbus-hq/nimbus/pkg/telemetry/metrics"
)

// Metrics records request count and latency for every proxied request. The
// provider label is taken from the third route segment; requests that never
// reach routing are labeled "unknown".
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordRequest(
				providerFromPath(r.URL.Path),
				r.Method,
				rw.statusCode,
				time.Since(startTime),
			)
		})
	}
}

func providerFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/v1/")
	if !ok {
		return "unknown"
	}
	parts := strings.SplitN(rest, "/", 4)
	if len(parts) < 3 || parts[2] == "" {
		return "unknown"
	}
	return parts[2]
}
