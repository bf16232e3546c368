package providers

import "fmt"

// UnsupportedProviderError indicates that a provider name has no entry in
// the base URL table, so no upstream endpoint can be derived for it.
type UnsupportedProviderError struct {
	// Provider is the unrecognized provider name token.
	Provider string
}

// Error implements the error interface.
func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q", e.Provider)
}

// InvalidPathError indicates that the provider sub-path does not satisfy the
// adapter's structural requirements (e.g., a missing resource or region
// segment).
type InvalidPathError struct {
	// Provider is the provider name token the path was addressed to.
	Provider string

	// Message describes what is wrong with the path.
	Message string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path for provider %q: %s", e.Provider, e.Message)
}
