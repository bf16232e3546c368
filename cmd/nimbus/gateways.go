package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"nimbus-hq/nimbus/pkg/cli"
	"nimbus-hq/nimbus/pkg/config"
	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/gateway/store"
)

var gatewaysFlags struct {
	format string
}

var gatewayAddFlags struct {
	name         string
	requiresAuth bool
	cacheTTL     int
}

var gatewaysCmd = &cobra.Command{
	Use:   "gateways",
	Short: "Inspect and manage gateway records",
	Long: `Inspect and manage gateway records in the configured source.

The list and get subcommands work against any source ("admin" or "sqlite").
The add and delete subcommands modify records and therefore require the
"sqlite" source; records behind a management API are owned by that service.`,
}

var gatewaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all gateway records",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, closeFetcher, err := openSource()
		if err != nil {
			return err
		}
		if closeFetcher != nil {
			defer closeFetcher()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		gateways, err := fetcher.ListGateways(ctx)
		if err != nil {
			return cli.NewCommandError("gateways list", err)
		}

		if gatewaysFlags.format == string(cli.FormatJSON) {
			return cli.WriteJSON(os.Stdout, gateways)
		}

		rows := [][]string{{"ID", "NAME", "AUTH", "CACHE TTL"}}
		for _, gw := range gateways {
			rows = append(rows, []string{
				gw.ID,
				gw.Name,
				strconv.FormatBool(gw.RequiresAuth),
				strconv.Itoa(gw.CacheTTL),
			})
		}
		return cli.Table(os.Stdout, rows)
	},
}

var gatewaysGetCmd = &cobra.Command{
	Use:   "get <gateway-id>",
	Short: "Show one gateway record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, closeFetcher, err := openSource()
		if err != nil {
			return err
		}
		if closeFetcher != nil {
			defer closeFetcher()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		gw, err := fetcher.FetchGateway(ctx, args[0])
		if err != nil {
			return cli.NewCommandError("gateways get", err)
		}
		return cli.WriteJSON(os.Stdout, gw)
	},
}

var gatewaysAddCmd = &cobra.Command{
	Use:   "add <gateway-id>",
	Short: "Create or update a gateway record (sqlite source only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		gw := &gateway.Config{
			ID:           args[0],
			Name:         gatewayAddFlags.name,
			RequiresAuth: gatewayAddFlags.requiresAuth,
			CacheTTL:     gatewayAddFlags.cacheTTL,
		}
		if err := s.Upsert(ctx, gw); err != nil {
			return cli.NewCommandError("gateways add", err)
		}

		fmt.Printf("✓ Gateway %q saved\n", args[0])
		return nil
	},
}

var gatewaysDeleteCmd = &cobra.Command{
	Use:   "delete <gateway-id>",
	Short: "Delete a gateway record (sqlite source only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.Delete(ctx, args[0]); err != nil {
			return cli.NewCommandError("gateways delete", err)
		}

		fmt.Printf("✓ Gateway %q deleted\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gatewaysCmd)
	gatewaysCmd.AddCommand(gatewaysListCmd, gatewaysGetCmd, gatewaysAddCmd, gatewaysDeleteCmd)

	gatewaysCmd.PersistentFlags().StringVar(&gatewaysFlags.format, "format", "table", "output format (table, json)")

	gatewaysAddCmd.Flags().StringVar(&gatewayAddFlags.name, "name", "", "human-readable gateway name")
	gatewaysAddCmd.Flags().BoolVar(&gatewayAddFlags.requiresAuth, "requires-auth", false, "require cf-aig-authorization on proxied requests")
	gatewaysAddCmd.Flags().IntVar(&gatewayAddFlags.cacheTTL, "cache-ttl", 0, "response cache TTL hint in seconds")
}

// openSource loads config and opens the configured gateway record source.
func openSource() (gateway.Fetcher, func() error, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	fetcher, closeFetcher, err := buildFetcher(cfg)
	if err != nil {
		return nil, nil, cli.NewCommandError("gateways", err)
	}
	return fetcher, closeFetcher, nil
}

// openStore opens the local SQLite store for write operations.
func openStore() (*store.SQLiteStore, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if cfg.Gateways.Source != "sqlite" {
		return nil, fmt.Errorf("gateway records are managed remotely when source is %q; use the management API instead", cfg.Gateways.Source)
	}

	return store.Open(store.Config{
		Path:        cfg.Gateways.SQLite.Path,
		BusyTimeout: cfg.Gateways.SQLite.BusyTimeout,
		WALMode:     cfg.Gateways.SQLite.WALMode,
	})
}
