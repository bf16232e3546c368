// Package middleware provides HTTP middleware for the proxy server: request
// ID generation, structured request logging, panic recovery, and Prometheus
// request metrics. Middleware compose in the usual wrap order; Recovery
// should be outermost so it catches panics from everything inside.
package middleware
