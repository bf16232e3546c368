package gateway

import "fmt"

// NotFoundError indicates that a gateway record does not exist, or that its
// source could not produce it and no cached copy was available.
type NotFoundError struct {
	// ID is the requested gateway identifier.
	ID string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway %q not found: %v", e.ID, e.Cause)
	}
	return fmt.Sprintf("gateway %q not found", e.ID)
}

// Unwrap returns the underlying error for error chain support.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// FetchError indicates a transport-level failure talking to the gateway
// record source. Callers of the cache never see it directly: the cache
// converts it to a stale-entry fallback or a NotFoundError.
type FetchError struct {
	// ID is the requested gateway identifier ("" for list operations).
	ID string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to fetch gateway %q: %v", e.ID, e.Cause)
	}
	return fmt.Sprintf("failed to list gateways: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *FetchError) Unwrap() error {
	return e.Cause
}
