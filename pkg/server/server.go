// Package server provides the HTTP server hosting the proxy pipeline and
// its operational endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"nimbus-hq/nimbus/pkg/config"
	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/providers"
	"nimbus-hq/nimbus/pkg/proxy"
	"nimbus-hq/nimbus/pkg/proxy/middleware"
	"nimbus-hq/nimbus/pkg/telemetry/health"
	"nimbus-hq/nimbus/pkg/telemetry/metrics"
)

// Server hosts the proxy pipeline plus health and metrics endpoints.
type Server struct {
	config    *config.Config
	cache     *gateway.ConfigCache
	adapters  *providers.AdapterSet
	collector *metrics.Collector
	checker   *health.Checker

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server. The collector may be nil when metrics are
// disabled.
func NewServer(cfg *config.Config, cache *gateway.ConfigCache, adapters *providers.AdapterSet, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		cache:        cache,
		adapters:     adapters,
		collector:    collector,
		checker:      health.NewChecker(cache),
		shutdownChan: make(chan struct{}),
	}
}

// Checker returns the health checker so startup code can flip readiness
// once the cache preload finishes.
func (s *Server) Checker() *health.Checker {
	return s.checker
}

// Start starts the HTTP server and blocks until the context is cancelled,
// Shutdown is called, or the listener fails. Signal handling belongs to the
// caller; the run command passes a context from cli.SetupSignalHandler.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.config.Proxy.ListenAddress,
		Handler:        s.setupRoutes(),
		ReadTimeout:    s.config.Proxy.ReadTimeout,
		WriteTimeout:   s.config.Proxy.WriteTimeout,
		IdleTimeout:    s.config.Proxy.IdleTimeout,
		MaxHeaderBytes: s.config.Proxy.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting proxy server", "address", s.config.Proxy.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Proxy.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Proxy.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("proxy server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	proxyHandler := proxy.NewHandler(s.cache, s.adapters, s.config.Proxy.UpstreamTimeout)

	mux.Handle("/v1/", proxyHandler)
	mux.Handle("/health", s.checker.LivenessHandler())
	mux.Handle("/ready", s.checker.ReadinessHandler())

	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		path := s.config.Telemetry.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.collector.Handler())
	}

	var handler http.Handler = mux
	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		handler = middleware.Metrics(s.collector)(handler)
	}
	// RequestID wraps Logging so the access log sees the generated ID.
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// Handler returns the configured HTTP handler without starting a listener.
// Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
