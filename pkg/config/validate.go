package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together rather than failing on the first one.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateGateways(&cfg.Gateways)...)
	errs = append(errs, validateProviders(cfg.Providers)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "must not be empty",
		})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: fmt.Sprintf("invalid address %q: must be host:port", cfg.ListenAddress),
		})
	}

	if cfg.UpstreamTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.upstream_timeout",
			Message: "must not be negative",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_header_bytes",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateGateways(cfg *GatewaysConfig) []FieldError {
	var errs []FieldError

	switch cfg.Source {
	case "admin":
		if cfg.Admin.BaseURL == "" {
			errs = append(errs, FieldError{
				Field:   "gateways.admin.base_url",
				Message: "required when gateways.source is \"admin\"",
			})
		} else if u, err := url.Parse(cfg.Admin.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   "gateways.admin.base_url",
				Message: fmt.Sprintf("invalid URL %q", cfg.Admin.BaseURL),
			})
		}
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "gateways.sqlite.path",
				Message: "required when gateways.source is \"sqlite\"",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "gateways.source",
			Message: fmt.Sprintf("invalid source %q: must be \"admin\" or \"sqlite\"", cfg.Source),
		})
	}

	if cfg.Cache.TTL < 0 {
		errs = append(errs, FieldError{
			Field:   "gateways.cache.ttl",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateProviders(providers map[string]string) []FieldError {
	var errs []FieldError

	for name, baseURL := range providers {
		if name == "" {
			errs = append(errs, FieldError{
				Field:   "providers",
				Message: "provider name must not be empty",
			})
			continue
		}
		if baseURL == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s", name),
				Message: "base URL must not be empty",
			})
			continue
		}
		if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s", name),
				Message: fmt.Sprintf("invalid base URL %q", baseURL),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q: must be debug, info, warn, or error", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q: must be json or text", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "must start with \"/\"",
		})
	}

	return errs
}
