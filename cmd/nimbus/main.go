// Nimbus is an AI gateway: an HTTP proxy that routes requests addressed to
// named gateways onto upstream AI-provider APIs.
//
// It rewrites URLs and headers to match each provider's calling convention,
// resolves gateway configurations through a TTL cache, and optionally
// enforces a gateway-level bearer-token check.
//
// Usage:
//
//	# Start the proxy with default configuration
//	nimbus run
//
//	# Start with a custom configuration file
//	nimbus run --config /etc/nimbus/config.yaml
//
//	# Validate a configuration file without starting
//	nimbus validate --config config.yaml
//
//	# List known gateways from the configured source
//	nimbus gateways list
//
//	# Show version information
//	nimbus version
package main

func main() {
	Execute()
}
