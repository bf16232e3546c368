package providers

import (
	"fmt"
	"net/http"
	"strings"
)

// azureBearerPrefix is the Authorization scheme Azure requests arrive with.
// Azure OpenAI itself expects the raw key in an api-key header instead.
const azureBearerPrefix = "Bearer "

// AzureAdapter routes requests to Azure OpenAI deployments. The sub-path
// encodes the resource and deployment names:
//
//	{resource_name}/{deployment_name}/{rest_of_path}
//
// which maps to
//
//	https://{resource_name}.openai.azure.com/openai/deployments/{deployment_name}/{rest_of_path}
//
// with the original query string (api-version and friends) appended verbatim.
type AzureAdapter struct{}

// NewAzureAdapter creates an Azure adapter.
func NewAzureAdapter() *AzureAdapter {
	return &AzureAdapter{}
}

// Name returns "azure".
func (a *AzureAdapter) Name() string { return "azure" }

// BuildTargetURL maps the sub-path onto the resource's deployment endpoint.
// A sub-path with fewer than two segments fails with an *InvalidPathError.
func (a *AzureAdapter) BuildTargetURL(accountID, provider, subPath, rawQuery string) (string, error) {
	parts := strings.SplitN(subPath, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", &InvalidPathError{
			Provider: provider,
			Message:  "path must include resource_name and deployment_name",
		}
	}

	resource, deployment := parts[0], parts[1]
	rest := ""
	if len(parts) == 3 {
		rest = parts[2]
	}

	target := fmt.Sprintf("https://%s.openai.azure.com/openai/deployments/%s/%s",
		resource, deployment, rest)
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target, nil
}

// TransformHeaders strips the gateway-control headers and Host, then swaps a
// "Authorization: Bearer {token}" header for the "api-key: {token}" header
// Azure OpenAI expects. Requests without a bearer Authorization header are
// left otherwise unmodified.
func (a *AzureAdapter) TransformHeaders(h http.Header) http.Header {
	out := stripControlHeaders(h)

	auth := out.Get("Authorization")
	if strings.HasPrefix(auth, azureBearerPrefix) {
		out.Del("Authorization")
		out.Set("api-key", strings.TrimPrefix(auth, azureBearerPrefix))
	}
	return out
}
