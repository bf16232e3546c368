// Package gateway defines gateway records and their resolution.
//
// A gateway is a named routing configuration: an identifier plus policy
// flags (authentication requirement, cache TTL, rate limit descriptor).
// Records live in a management service or a local SQLite database; both are
// consumed through the Fetcher interface.
//
// # Config Cache
//
// ConfigCache is the proxy's only persistent shared mutable state. It serves
// records fresh for a TTL (default 5 minutes), refetches on expiry, and
// falls back to the stale record when a refetch fails:
//
//	cache := gateway.NewConfigCache(fetcher, 5*time.Minute, logger)
//	_ = cache.Preload(ctx) // non-fatal
//
//	cfg, err := cache.Get(ctx, "my-gateway")
//
// # Scheduled Refresh
//
// RefreshScheduler optionally re-preloads the cache on a cron schedule so
// entries rarely expire on the request path:
//
//	sched := gateway.NewRefreshScheduler(cache, "@every 4m")
//	if err := sched.Start(ctx); err != nil {
//	    return err
//	}
//	defer sched.Stop()
package gateway
