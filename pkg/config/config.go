package config

import "time"

// Config is the root configuration structure for the Nimbus AI gateway.
// It contains all configuration sections for the proxy server, gateway
// record resolution, provider routing, and telemetry.
type Config struct {
	// Proxy contains HTTP proxy server configuration including listen address,
	// timeouts, and connection limits.
	Proxy ProxyConfig `yaml:"proxy"`

	// Gateways controls where gateway records are resolved from and how the
	// in-memory gateway config cache behaves.
	Gateways GatewaysConfig `yaml:"gateways"`

	// Providers maps provider names to base URL overrides. Entries here
	// override or extend the built-in provider base URL table. The value may
	// contain an {account_id} placeholder that is substituted per request.
	Providers map[string]string `yaml:"providers"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch enables hot-reload of provider base URL overrides when the
	// configuration file changes on disk.
	Watch bool `yaml:"watch"`
}

// ProxyConfig contains configuration for the HTTP proxy server.
type ProxyConfig struct {
	// ListenAddress is the address and port for the proxy to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Streaming relays need headroom here, so the default is
	// deliberately generous.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// UpstreamTimeout bounds a single forwarded request to an AI provider.
	// Requests exceeding it are reported to the caller as a bad gateway.
	// Default: 10s
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
}

// GatewaysConfig controls gateway record resolution and caching.
type GatewaysConfig struct {
	// Source selects where gateway records are fetched from.
	// Options: "admin" (remote management API), "sqlite" (local database).
	// Default: "admin"
	Source string `yaml:"source"`

	// Admin contains settings for the remote management API client.
	// Only used when Source is "admin".
	Admin AdminConfig `yaml:"admin"`

	// SQLite contains settings for the local gateway database.
	// Only used when Source is "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Cache contains settings for the in-memory gateway config cache.
	Cache CacheConfig `yaml:"cache"`
}

// AdminConfig contains settings for the gateway management API client.
type AdminConfig struct {
	// BaseURL is the base URL of the management API.
	// Example: "https://admin.example.com"
	BaseURL string `yaml:"base_url"`

	// APIToken authenticates requests to the management API.
	// This should typically be loaded from an environment variable.
	APIToken string `yaml:"api_token"`

	// Timeout is the maximum duration for management API requests.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`
}

// SQLiteConfig contains settings for the local SQLite gateway store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/gateways.db"
	Path string `yaml:"path"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`
}

// CacheConfig contains settings for the gateway config cache.
type CacheConfig struct {
	// TTL is how long a cached gateway record is considered fresh.
	// Default: 5m
	TTL time.Duration `yaml:"ttl"`

	// Preload controls whether the cache is bulk-populated at startup.
	// Preload failure is non-fatal; the cache starts empty instead.
	// Default: true
	Preload bool `yaml:"preload"`

	// RefreshSchedule is an optional cron expression for periodic bulk
	// refresh of the cache (e.g., "@every 4m"). Empty disables scheduled
	// refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "nimbus"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path the metrics endpoint is served on.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
