package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Parsing starts from a fully defaulted Config, so fields absent from the
// file keep their default values (including booleans that default to true).
// The result is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention NIMBUS_SECTION_FIELD (e.g., NIMBUS_PROXY_LISTEN_ADDRESS) and
// always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	if val := os.Getenv("NIMBUS_PROXY_LISTEN_ADDRESS"); val != "" {
		cfg.Proxy.ListenAddress = val
	}
	if val := os.Getenv("NIMBUS_PROXY_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.ReadTimeout = d
		}
	}
	if val := os.Getenv("NIMBUS_PROXY_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.WriteTimeout = d
		}
	}
	if val := os.Getenv("NIMBUS_PROXY_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.UpstreamTimeout = d
		}
	}
	if val := os.Getenv("NIMBUS_PROXY_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Proxy.MaxHeaderBytes = i
		}
	}

	// Gateway source overrides
	if val := os.Getenv("NIMBUS_GATEWAYS_SOURCE"); val != "" {
		cfg.Gateways.Source = val
	}
	if val := os.Getenv("NIMBUS_ADMIN_BASE_URL"); val != "" {
		cfg.Gateways.Admin.BaseURL = val
	}
	if val := os.Getenv("NIMBUS_ADMIN_API_TOKEN"); val != "" {
		cfg.Gateways.Admin.APIToken = val
	}
	if val := os.Getenv("NIMBUS_SQLITE_PATH"); val != "" {
		cfg.Gateways.SQLite.Path = val
	}

	// Cache overrides
	if val := os.Getenv("NIMBUS_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateways.Cache.TTL = d
		}
	}
	if val := os.Getenv("NIMBUS_CACHE_PRELOAD"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Gateways.Cache.Preload = b
		}
	}
	if val := os.Getenv("NIMBUS_CACHE_REFRESH_SCHEDULE"); val != "" {
		cfg.Gateways.Cache.RefreshSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("NIMBUS_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("NIMBUS_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("NIMBUS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
