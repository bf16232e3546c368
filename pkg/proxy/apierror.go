package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/providers"
)

// Category identifies the class of a pipeline-terminating error. It is
// serialized verbatim into the "error" field of error responses.
type Category string

const (
	CategoryValidation   Category = "ValidationError"
	CategoryNotFound     Category = "NotFoundError"
	CategoryUnauthorized Category = "UnauthorizedError"
	CategoryForbidden    Category = "ForbiddenError"
	CategoryUpstream     Category = "UpstreamConnectionError"
	CategoryInternal     Category = "InternalError"
)

// APIError is a terminal pipeline error carrying the HTTP status and the
// JSON body to send to the caller.
type APIError struct {
	Status   int      `json:"-"`
	Category Category `json:"error"`
	Message  string   `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Category, e.Status, e.Message)
}

// NewValidationError creates a 400 error for malformed routes or
// client-attributable provider misconfiguration.
func NewValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Category: CategoryValidation, Message: message}
}

// NewNotFoundError creates a 404 error for an unknown gateway.
func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Category: CategoryNotFound, Message: message}
}

// NewUnauthorizedError creates a 401 error for a missing or malformed
// gateway authorization header.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Category: CategoryUnauthorized, Message: message}
}

// NewForbiddenError creates a 403 error for an invalid authorization token.
func NewForbiddenError(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Category: CategoryForbidden, Message: message}
}

// NewUpstreamError creates a 502 error for a network failure reaching the
// provider.
func NewUpstreamError(message string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Category: CategoryUpstream, Message: message}
}

// NewInternalError creates a 500 error for an unexpected fault.
func NewInternalError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Category: CategoryInternal, Message: message}
}

// FromError maps errors from collaborating packages to terminal responses.
// Unknown error types map to an internal error with a generic message so
// internal details never reach the caller.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var notFound *gateway.NotFoundError
	if errors.As(err, &notFound) {
		return NewNotFoundError(fmt.Sprintf("gateway %q not found", notFound.ID))
	}

	// Unsupported providers and malformed provider paths are both client
	// misconfiguration.
	var unsupported *providers.UnsupportedProviderError
	if errors.As(err, &unsupported) {
		return NewValidationError(unsupported.Error())
	}
	var invalidPath *providers.InvalidPathError
	if errors.As(err, &invalidPath) {
		return NewValidationError(invalidPath.Error())
	}

	return NewInternalError("an internal error occurred")
}

// WriteError writes the error as a JSON response. It must only be called
// before any part of the response has been sent.
func WriteError(w http.ResponseWriter, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(apiErr)
}
