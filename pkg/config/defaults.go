package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultUpstreamTimeout = 10 * time.Second

	// Gateway source defaults
	DefaultGatewaySource     = "admin"
	DefaultAdminTimeout      = 15 * time.Second
	DefaultSQLitePath        = "data/gateways.db"
	DefaultSQLiteBusyTimeout = 5 * time.Second
	DefaultSQLiteWALMode     = true

	// Cache defaults
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCachePreload = true

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "nimbus"
	DefaultMetricsSubsystem = "gateway"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills in default values for any zero-valued configuration
// fields. It is called automatically by LoadConfig but may also be used on a
// hand-constructed Config.
func ApplyDefaults(cfg *Config) {
	// Proxy defaults
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Proxy.UpstreamTimeout == 0 {
		cfg.Proxy.UpstreamTimeout = DefaultUpstreamTimeout
	}

	// Gateway source defaults
	if cfg.Gateways.Source == "" {
		cfg.Gateways.Source = DefaultGatewaySource
	}
	if cfg.Gateways.Admin.Timeout == 0 {
		cfg.Gateways.Admin.Timeout = DefaultAdminTimeout
	}
	if cfg.Gateways.SQLite.Path == "" {
		cfg.Gateways.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Gateways.SQLite.BusyTimeout == 0 {
		cfg.Gateways.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Cache defaults
	if cfg.Gateways.Cache.TTL == 0 {
		cfg.Gateways.Cache.TTL = DefaultCacheTTL
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// NewDefaultConfig returns a Config populated entirely with default values.
// Boolean fields that default to true are set explicitly since ApplyDefaults
// cannot distinguish "false" from "unset".
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Gateways.SQLite.WALMode = DefaultSQLiteWALMode
	cfg.Gateways.Cache.Preload = DefaultCachePreload
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
