package gateway

import (
	"context"
	"testing"
	"time"
)

func TestRefreshSchedulerEmptyScheduleIsNoop(t *testing.T) {
	cache := NewConfigCache(&fakeFetcher{}, time.Minute, nil)
	s := NewRefreshScheduler(cache, "")

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("IsRunning() = true for empty schedule")
	}
	if s.NextRun() != nil {
		t.Error("NextRun() != nil for empty schedule")
	}
}

func TestRefreshSchedulerRejectsInvalidSchedule(t *testing.T) {
	cache := NewConfigCache(&fakeFetcher{}, time.Minute, nil)
	s := NewRefreshScheduler(cache, "not a schedule")

	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() with invalid schedule expected error, got nil")
	}
}

func TestRefreshSchedulerStartStop(t *testing.T) {
	cache := NewConfigCache(&fakeFetcher{}, time.Minute, nil)
	s := NewRefreshScheduler(cache, "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}
	if s.NextRun() == nil {
		t.Error("NextRun() = nil after Start")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}

	// Stop is idempotent.
	s.Stop()
}
