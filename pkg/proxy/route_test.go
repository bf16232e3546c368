package proxy

import (
	"net/http"
	"testing"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Route
	}{
		{
			name: "full path with nested sub-path",
			path: "/v1/acct/gw1/openai/chat/completions",
			want: Route{AccountID: "acct", GatewayID: "gw1", Provider: "openai", SubPath: "chat/completions"},
		},
		{
			name: "single sub-path segment",
			path: "/v1/acct/gw1/anthropic/messages",
			want: Route{AccountID: "acct", GatewayID: "gw1", Provider: "anthropic", SubPath: "messages"},
		},
		{
			name: "no sub-path",
			path: "/v1/acct/gw1/openai",
			want: Route{AccountID: "acct", GatewayID: "gw1", Provider: "openai"},
		},
		{
			name: "deeply nested sub-path preserved verbatim",
			path: "/v1/account123/gw/workers-ai/@cf/meta/llama-2-7b-chat-int8",
			want: Route{AccountID: "account123", GatewayID: "gw", Provider: "workers-ai", SubPath: "@cf/meta/llama-2-7b-chat-int8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, apiErr := ParseRoute(tt.path)
			if apiErr != nil {
				t.Fatalf("ParseRoute(%q) error = %v", tt.path, apiErr)
			}
			if got != tt.want {
				t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseRouteInvalid(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "missing prefix", path: "/v2/acct/gw1/openai/x"},
		{name: "root path", path: "/"},
		{name: "empty account", path: "/v1//gw1/openai/x"},
		{name: "empty gateway", path: "/v1/acct//openai/x"},
		{name: "empty provider", path: "/v1/acct/gw1//x"},
		{name: "missing provider", path: "/v1/acct/gw1"},
		{name: "prefix only", path: "/v1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := ParseRoute(tt.path)
			if apiErr == nil {
				t.Fatalf("ParseRoute(%q) expected error, got nil", tt.path)
			}
			if apiErr.Status != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", apiErr.Status, http.StatusBadRequest)
			}
			if apiErr.Category != CategoryValidation {
				t.Errorf("Category = %q, want %q", apiErr.Category, CategoryValidation)
			}
		})
	}
}
