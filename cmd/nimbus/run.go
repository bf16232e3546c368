package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"nimbus-hq/nimbus/pkg/admin"
	"nimbus-hq/nimbus/pkg/cli"
	"nimbus-hq/nimbus/pkg/config"
	"nimbus-hq/nimbus/pkg/gateway"
	"nimbus-hq/nimbus/pkg/gateway/store"
	"nimbus-hq/nimbus/pkg/providers"
	"nimbus-hq/nimbus/pkg/server"
	"nimbus-hq/nimbus/pkg/telemetry/logging"
	"nimbus-hq/nimbus/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Nimbus proxy server",
	Long: `Start the Nimbus proxy server with the specified configuration.

The server listens on the configured address and routes requests shaped
/v1/{account_id}/{gateway_id}/{provider_name}/{path...} onto the matching
upstream provider API.

Examples:
  # Start with default config
  nimbus run

  # Start with custom config
  nimbus run --config /etc/nimbus/config.yaml

  # Override listen address
  nimbus run --listen 0.0.0.0:8080

  # Validate config without starting server
  nimbus run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logging.Setup(&cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Nimbus v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)

	// Gateway record source
	fetcher, closeFetcher, err := buildFetcher(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if closeFetcher != nil {
		defer closeFetcher()
	}

	// Metrics
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	// Gateway config cache
	cache := gateway.NewConfigCache(fetcher, cfg.Gateways.Cache.TTL, slog.Default())
	if collector != nil {
		cache.SetLookupObserver(collector.RecordCacheLookup)
		collector.RegisterCacheSize(cache.Size)
	}

	// Provider table with configured base URL overrides
	table := providers.NewTable()
	if len(cfg.Providers) > 0 {
		table.SetOverrides(cfg.Providers)
	}
	adapters := providers.NewAdapterSet(table)

	// One signal context drives the server, the refresh scheduler, and the
	// config watcher; the deferred cancel stops them when Start returns.
	ctx, cancel := context.WithCancel(cli.SetupSignalHandler())
	defer cancel()

	srv := server.NewServer(cfg, cache, adapters, collector)

	// Preload is non-fatal; the server becomes ready either way.
	if cfg.Gateways.Cache.Preload {
		if err := cache.Preload(ctx); err == nil {
			fmt.Printf("✓ Gateway cache preloaded (%d gateways)\n", cache.Size())
		}
	}
	srv.Checker().SetReady()

	// Scheduled cache refresh
	if cfg.Gateways.Cache.RefreshSchedule != "" {
		scheduler := gateway.NewRefreshScheduler(cache, cfg.Gateways.Cache.RefreshSchedule)
		if err := scheduler.Start(ctx); err != nil {
			slog.Warn("failed to start cache refresh scheduler", "error", err)
		} else {
			defer scheduler.Stop()
		}
	}

	// Hot reload of provider base URL overrides
	if cfg.Watch {
		watcher, err := config.NewWatcher(cfgFile, slog.Default())
		if err != nil {
			slog.Warn("failed to start config watcher", "error", err)
		} else {
			go func() {
				_ = watcher.Watch(ctx, func(updated *config.Config) {
					table.SetOverrides(updated.Providers)
					slog.Info("provider overrides reloaded", "providers", len(updated.Providers))
				})
			}()
			defer watcher.Stop()
		}
	}

	fmt.Printf("✓ Server listening on %s\n", cfg.Proxy.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Proxy.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Proxy.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// buildFetcher constructs the gateway record source selected in config.
// The returned close function releases the source's resources; it is nil for
// sources with nothing to close.
func buildFetcher(cfg *config.Config) (gateway.Fetcher, func() error, error) {
	switch cfg.Gateways.Source {
	case "admin":
		client := admin.NewClient(
			cfg.Gateways.Admin.BaseURL,
			cfg.Gateways.Admin.APIToken,
			cfg.Gateways.Admin.Timeout,
		)
		return client, nil, nil
	case "sqlite":
		s, err := store.Open(store.Config{
			Path:        cfg.Gateways.SQLite.Path,
			BusyTimeout: cfg.Gateways.SQLite.BusyTimeout,
			WALMode:     cfg.Gateways.SQLite.WALMode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gateway store: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported gateway source: %s", cfg.Gateways.Source)
	}
}
