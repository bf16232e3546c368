// Package proxy implements the request routing and forwarding pipeline.
//
// Inbound requests shaped /v1/{accountId}/{gatewayId}/{providerName}/{path...}
// are decoded, resolved against the gateway configuration cache, checked by
// the authorization gate, adapted to the target provider's calling
// convention, and forwarded with the body streamed in both directions.
//
// Terminal errors are serialized as JSON objects with "error" and "message"
// fields; each pipeline stage produces its own terminal response and stops
// the pipeline.
package proxy
