package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/providers"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory Category
	}{
		{
			name:         "gateway not found",
			err:          &gateway.NotFoundError{ID: "gw1"},
			wantStatus:   http.StatusNotFound,
			wantCategory: CategoryNotFound,
		},
		{
			name:         "unsupported provider",
			err:          &providers.UnsupportedProviderError{Provider: "bogus"},
			wantStatus:   http.StatusBadRequest,
			wantCategory: CategoryValidation,
		},
		{
			name:         "invalid provider path",
			err:          &providers.InvalidPathError{Provider: "azure-openai", Message: "path must include resource_name and deployment_name"},
			wantStatus:   http.StatusBadRequest,
			wantCategory: CategoryValidation,
		},
		{
			name:         "already an api error",
			err:          NewUpstreamError("boom"),
			wantStatus:   http.StatusBadGateway,
			wantCategory: CategoryUpstream,
		},
		{
			name:         "unknown error",
			err:          errors.New("something unexpected"),
			wantStatus:   http.StatusInternalServerError,
			wantCategory: CategoryInternal,
		},
		{
			name:         "wrapped not found",
			err:          &gateway.FetchError{ID: "gw1", Cause: &gateway.NotFoundError{ID: "gw1"}},
			wantStatus:   http.StatusNotFound,
			wantCategory: CategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromError(tt.err)
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", apiErr.Category, tt.wantCategory)
			}
		})
	}
}

func TestFromErrorHidesInternalDetails(t *testing.T) {
	apiErr := FromError(errors.New("dial tcp 10.0.0.1: connection refused"))
	if apiErr.Message == "dial tcp 10.0.0.1: connection refused" {
		t.Error("internal error detail leaked into client-facing message")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewForbiddenError("invalid authorization token"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != string(CategoryForbidden) {
		t.Errorf("error field = %q, want %q", body["error"], CategoryForbidden)
	}
	if body["message"] != "invalid authorization token" {
		t.Errorf("message field = %q, want %q", body["message"], "invalid authorization token")
	}
}
