package providers

import "net/http"

// GenericAdapter handles every provider with a fixed base URL in the
// provider table, including account-scoped providers like workers-ai whose
// base URL carries an account placeholder. It is the default adapter for
// any provider name without a special-cased family.
type GenericAdapter struct {
	table *Table
}

// NewGenericAdapter creates a generic adapter backed by the given table.
func NewGenericAdapter(table *Table) *GenericAdapter {
	return &GenericAdapter{table: table}
}

// Name returns "generic".
func (a *GenericAdapter) Name() string { return "generic" }

// BuildTargetURL resolves the provider's base URL from the table,
// substitutes the account placeholder if present, and appends the sub-path
// verbatim. Unknown providers fail with an *UnsupportedProviderError.
func (a *GenericAdapter) BuildTargetURL(accountID, provider, subPath, rawQuery string) (string, error) {
	base, ok := a.table.BaseURL(provider)
	if !ok {
		return "", &UnsupportedProviderError{Provider: provider}
	}

	target := substituteAccount(base, accountID) + "/" + subPath
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target, nil
}

// TransformHeaders strips the gateway-control headers and Host; all other
// headers pass through unchanged.
func (a *GenericAdapter) TransformHeaders(h http.Header) http.Header {
	return stripControlHeaders(h)
}
