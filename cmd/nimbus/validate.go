package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nimbus-hq/nimbus/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the server.

Validation checks the proxy listen address and timeouts, the gateway source
settings, provider base URL overrides, and telemetry settings. Environment
variable overrides (NIMBUS_*) are applied before validation, matching what
"nimbus run" would use.

Examples:
  # Validate the default config file
  nimbus validate

  # Validate a specific file
  nimbus validate --config /etc/nimbus/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Configuration valid: %s\n", cfgFile)
		fmt.Printf("  Listen address:  %s\n", cfg.Proxy.ListenAddress)
		fmt.Printf("  Gateway source:  %s\n", cfg.Gateways.Source)
		fmt.Printf("  Cache TTL:       %s\n", cfg.Gateways.Cache.TTL)
		if len(cfg.Providers) > 0 {
			fmt.Printf("  Provider overrides: %d\n", len(cfg.Providers))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
