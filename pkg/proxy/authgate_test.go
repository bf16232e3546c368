package proxy

import (
	"net/http"
	"strings"
	"testing"

	"nimbus-hq/nimbus/pkg/gateway"
)

func TestAuthorizeDisabled(t *testing.T) {
	cfg := &gateway.Config{ID: "gw1", RequiresAuth: false}

	// No header, garbage header, valid header: all allowed.
	for _, value := range []string{"", "InvalidFormat token", "Bearer secret"} {
		headers := http.Header{}
		if value != "" {
			headers.Set("cf-aig-authorization", value)
		}
		if apiErr := Authorize(cfg, headers); apiErr != nil {
			t.Errorf("Authorize() with header %q = %v, want nil", value, apiErr)
		}
	}
}

func TestAuthorizeRequired(t *testing.T) {
	cfg := &gateway.Config{ID: "gw1", RequiresAuth: true}

	tests := []struct {
		name        string
		header      string
		setHeader   bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			setHeader:   false,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "cf-aig-authorization header is required",
		},
		{
			name:        "wrong prefix",
			header:      "InvalidFormat token",
			setHeader:   true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: `must start with "Bearer "`,
		},
		{
			name:        "lowercase bearer rejected",
			header:      "bearer token123",
			setHeader:   true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: `must start with "Bearer "`,
		},
		{
			name:        "empty token",
			header:      "Bearer ",
			setHeader:   true,
			wantStatus:  http.StatusForbidden,
			wantMessage: "invalid authorization token",
		},
		{
			name:        "whitespace-only token",
			header:      "Bearer    ",
			setHeader:   true,
			wantStatus:  http.StatusForbidden,
			wantMessage: "invalid authorization token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.setHeader {
				headers.Set("cf-aig-authorization", tt.header)
			}

			apiErr := Authorize(cfg, headers)
			if apiErr == nil {
				t.Fatal("Authorize() = nil, want error")
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if !strings.Contains(apiErr.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want it to contain %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestAuthorizeValidToken(t *testing.T) {
	cfg := &gateway.Config{ID: "gw1", RequiresAuth: true}
	headers := http.Header{}
	headers.Set("cf-aig-authorization", "Bearer secret-token")

	if apiErr := Authorize(cfg, headers); apiErr != nil {
		t.Errorf("Authorize() = %v, want nil", apiErr)
	}
}
