// Package config provides configuration management for the Nimbus AI gateway.
//
// This package handles loading, validating, and watching configuration from
// YAML files with environment variable overrides. Parsing starts from a fully
// defaulted Config so absent fields keep sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention NIMBUS_SECTION_FIELD.
// For example:
//
//   - NIMBUS_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - NIMBUS_ADMIN_API_TOKEN overrides gateways.admin.api_token
//   - NIMBUS_LOG_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Hot Reload
//
// When watch is enabled, a Watcher monitors the configuration file and
// re-parses it on change. Only provider base URL overrides are applied at
// runtime; server-level settings require a restart.
//
// # Example Configuration
//
//	proxy:
//	  listen_address: "0.0.0.0:8080"
//	  upstream_timeout: 10s
//
//	gateways:
//	  source: sqlite
//	  sqlite:
//	    path: data/gateways.db
//	  cache:
//	    ttl: 5m
//	    preload: true
//	    refresh_schedule: "@every 4m"
//
//	providers:
//	  openai: "https://api.openai.com/v1"
package config
