package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nimbus",
	Short: "Nimbus - AI gateway proxy",
	Long: `Nimbus is an AI gateway: an HTTP proxy that routes requests addressed
to named gateways onto upstream AI-provider APIs.

It provides:
  - Provider adaptation (OpenAI, Anthropic, Azure OpenAI, AWS Bedrock,
    Workers AI, and other OpenAI-compatible APIs)
  - Gateway configuration resolution with a TTL cache and stale fallback
  - Optional gateway-level bearer-token authentication
  - Streaming request and response relay`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
