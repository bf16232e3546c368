package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler re-preloads the gateway config cache on a cron schedule,
// keeping records warm so expiry rarely happens on the request path. A
// failed refresh keeps the current cache contents; the next tick tries again.
type RefreshScheduler struct {
	cache    *ConfigCache
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewRefreshScheduler creates a scheduler that refreshes the given cache.
// The schedule uses standard cron syntax, including "@every" intervals.
func NewRefreshScheduler(cache *ConfigCache, schedule string) *RefreshScheduler {
	return &RefreshScheduler{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "gateway.refresh"),
	}
}

// Start begins scheduled refreshing. If the schedule is empty, the scheduler
// does nothing and Start returns immediately without error. The scheduler
// stops itself when ctx is cancelled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("refresh schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runRefresh(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule cache refresh: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("gateway cache refresh scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runRefresh executes one refresh cycle.
func (s *RefreshScheduler) runRefresh(ctx context.Context) {
	if err := s.cache.Preload(ctx); err != nil {
		s.logger.Error("scheduled gateway cache refresh failed", "error", err)
		return
	}
	s.logger.Debug("scheduled gateway cache refresh completed",
		"gateways", s.cache.Size(),
	)
}

// Stop stops the scheduler and waits for any running refresh to complete.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("gateway cache refresh scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *RefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled refresh time, or nil when no refresh
// is scheduled.
func (s *RefreshScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
