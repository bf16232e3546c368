package gateway

import (
	"context"
	"time"
)

// Config is a gateway record: a named routing configuration associating an
// identifier with policy flags. The proxy only ever reads these records;
// they are created and modified through the management API.
type Config struct {
	// ID uniquely identifies the gateway. It is the second path segment of
	// every proxied request.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable display name.
	Name string `json:"name" yaml:"name"`

	// RequiresAuth controls whether proxied requests must carry a gateway
	// bearer token in the cf-aig-authorization header.
	RequiresAuth bool `json:"requires_auth" yaml:"requires_auth"`

	// CacheTTL is the gateway's advertised cache TTL in seconds. It is part
	// of the record but informational to the proxy core.
	CacheTTL int `json:"cache_ttl" yaml:"cache_ttl"`

	// RateLimit describes the gateway's rate limiting policy. The proxy
	// carries it but does not enforce it.
	RateLimit *RateLimit `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`

	// CreatedAt and ModifiedAt are server-assigned, read-only timestamps.
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
}

// Clone returns a deep copy of the record. The copy shares no pointers with
// the original, so mutating it (including RateLimit) never writes through.
func (c *Config) Clone() *Config {
	out := *c
	if c.RateLimit != nil {
		rl := *c.RateLimit
		out.RateLimit = &rl
	}
	return &out
}

// RateLimit describes a gateway rate limiting policy.
type RateLimit struct {
	// Limit is the maximum number of requests per interval.
	Limit int `json:"limit" yaml:"limit"`

	// Interval is the limiting window in seconds.
	Interval int `json:"interval" yaml:"interval"`

	// Technique selects the limiting algorithm ("fixed", "sliding").
	Technique string `json:"technique" yaml:"technique"`
}

// Fetcher resolves gateway records from their source of truth. The remote
// management API client and the local SQLite store both implement it.
type Fetcher interface {
	// FetchGateway returns the gateway record with the given ID.
	// Returns a *NotFoundError if the gateway does not exist or the source
	// cannot be reached.
	FetchGateway(ctx context.Context, id string) (*Config, error)

	// ListGateways returns all gateway records.
	ListGateways(ctx context.Context) ([]*Config, error)
}
