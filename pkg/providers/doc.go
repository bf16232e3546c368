// Package providers contains the per-provider adapter strategies that
// translate gateway-relative requests into provider-native ones.
//
// Three adapter families cover the supported upstreams:
//
//   - GenericAdapter: any provider with a fixed base URL in the provider
//     table (openai, anthropic, workers-ai, groq, ...). Account-scoped base
//     URLs use an {account_id} placeholder.
//   - AzureAdapter: Azure OpenAI deployments, addressed as
//     {resource}/{deployment}/{path}, with Bearer-to-api-key header rewrite.
//   - BedrockAdapter: AWS Bedrock runtime, addressed as {region}/{path},
//     preserving caller-computed SigV4 signature headers untouched.
//
// Adapters are stateless and shared across requests. Selection is a pure
// function of the provider name token:
//
//	set := providers.NewAdapterSet(providers.NewTable())
//	adapter := set.Select("azure-openai")
//	target, err := adapter.BuildTargetURL(account, name, subPath, rawQuery)
//	headers := adapter.TransformHeaders(r.Header)
//
// All adapters consume the gateway-control headers (cf-aig-*) and never
// forward them upstream.
package providers
