package providers

import (
	"fmt"
	"net/http"
	"strings"
)

// BedrockAdapter routes requests to AWS Bedrock runtime endpoints. The
// sub-path's first segment is the AWS region:
//
//	{region}/{rest_of_path}
//
// which maps to
//
//	https://bedrock-runtime.{region}.amazonaws.com/{rest_of_path}
//
// Bedrock requests are SigV4-signed by the caller, so beyond the
// gateway-control headers nothing may be altered: the Authorization and
// X-Amz-* headers are part of a cryptographic signature and must reach AWS
// byte-for-byte.
type BedrockAdapter struct{}

// NewBedrockAdapter creates a Bedrock adapter.
func NewBedrockAdapter() *BedrockAdapter {
	return &BedrockAdapter{}
}

// Name returns "bedrock".
func (a *BedrockAdapter) Name() string { return "bedrock" }

// BuildTargetURL maps the sub-path onto the regional Bedrock runtime
// endpoint. An empty sub-path fails with an *InvalidPathError.
func (a *BedrockAdapter) BuildTargetURL(accountID, provider, subPath, rawQuery string) (string, error) {
	parts := strings.SplitN(subPath, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", &InvalidPathError{
			Provider: provider,
			Message:  "path must include region",
		}
	}

	region := parts[0]
	rest := ""
	if len(parts) == 2 {
		rest = parts[1]
	}

	target := fmt.Sprintf("https://bedrock-runtime.%s.amazonaws.com/%s", region, rest)
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target, nil
}

// TransformHeaders strips only the gateway-control headers and Host. All
// remaining headers, including Authorization and the X-Amz-* signature
// headers, pass through unmodified.
func (a *BedrockAdapter) TransformHeaders(h http.Header) http.Header {
	return stripControlHeaders(h)
}
