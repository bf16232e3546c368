// Package admin provides the HTTP client for the gateway management API.
//
// The management service owns gateway records; the proxy only reads them
// through this client, which implements gateway.Fetcher. Record shape on the
// wire matches gateway.Config's JSON encoding.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nimbus-hq/nimbus/pkg/gateway"
)

// Client talks to the gateway management API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a management API client.
func NewClient(baseURL, apiToken string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
				ForceAttemptHTTP2: true,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGateway returns the gateway record with the given ID.
// Unknown IDs and transport failures both surface as *gateway.NotFoundError,
// matching the collaborator contract the cache relies on.
func (c *Client) FetchGateway(ctx context.Context, id string) (*gateway.Config, error) {
	var cfg gateway.Config
	if err := c.get(ctx, "/v1/gateways/"+id, &cfg); err != nil {
		if nf, ok := err.(*gateway.NotFoundError); ok {
			nf.ID = id
			return nil, nf
		}
		return nil, &gateway.NotFoundError{ID: id, Cause: err}
	}
	return &cfg, nil
}

// ListGateways returns all gateway records.
func (c *Client) ListGateways(ctx context.Context) ([]*gateway.Config, error) {
	var configs []*gateway.Config
	if err := c.get(ctx, "/v1/gateways", &configs); err != nil {
		return nil, &gateway.FetchError{Cause: err}
	}
	return configs, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("management API request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &gateway.NotFoundError{}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("management API returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode management API response: %w", err)
	}
	return nil
}
