package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeFetcher is a controllable Fetcher that counts calls.
type fakeFetcher struct {
	mu       sync.Mutex
	configs  map[string]*Config
	fetches  int
	lists    int
	fetchErr error
	listErr  error
}

func newFakeFetcher(configs ...*Config) *fakeFetcher {
	m := make(map[string]*Config, len(configs))
	for _, c := range configs {
		m[c.ID] = c
	}
	return &fakeFetcher{configs: m}
}

func (f *fakeFetcher) FetchGateway(ctx context.Context, id string) (*Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	cfg, ok := f.configs[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	cp := *cfg
	return &cp, nil
}

func (f *fakeFetcher) ListGateways(ctx context.Context) ([]*Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*Config, 0, len(f.configs))
	for _, cfg := range f.configs {
		cp := *cfg
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeFetcher) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeFetcher) setFetchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchErr = err
}

func TestConfigCache_GetFetchesOncePerTTL(t *testing.T) {
	fetcher := newFakeFetcher(&Config{ID: "gw1", Name: "Gateway One"})
	cache := NewConfigCache(fetcher, 5*time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	// First get performs exactly one fetch.
	cfg, err := cache.Get(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.ID != "gw1" {
		t.Errorf("Get() ID = %q, want gw1", cfg.ID)
	}
	if got := fetcher.fetchCount(); got != 1 {
		t.Errorf("fetch count after first Get = %d, want 1", got)
	}

	// Second get within TTL performs zero additional fetches.
	if _, err := cache.Get(context.Background(), "gw1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := fetcher.fetchCount(); got != 1 {
		t.Errorf("fetch count after cached Get = %d, want 1", got)
	}

	// After TTL elapses, exactly one more fetch happens.
	now = now.Add(5*time.Minute + time.Second)
	if _, err := cache.Get(context.Background(), "gw1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := fetcher.fetchCount(); got != 2 {
		t.Errorf("fetch count after expiry = %d, want 2", got)
	}
}

func TestConfigCache_StaleFallbackOnRefreshFailure(t *testing.T) {
	fetcher := newFakeFetcher(&Config{ID: "gw1", Name: "Gateway One", RequiresAuth: true})
	cache := NewConfigCache(fetcher, time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	if _, err := cache.Get(context.Background(), "gw1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Expire the entry and make the refresh fail.
	now = now.Add(2 * time.Minute)
	fetcher.setFetchErr(errors.New("connection refused"))

	cfg, err := cache.Get(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("Get() with stale entry returned error = %v, want stale value", err)
	}
	if !cfg.RequiresAuth || cfg.Name != "Gateway One" {
		t.Errorf("stale Get() = %+v, want prior value unchanged", cfg)
	}
}

func TestConfigCache_NotFound(t *testing.T) {
	fetcher := newFakeFetcher()
	cache := NewConfigCache(fetcher, time.Minute, nil)

	_, err := cache.Get(context.Background(), "missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get() error = %v, want *NotFoundError", err)
	}
	if nf.ID != "missing" {
		t.Errorf("NotFoundError.ID = %q, want missing", nf.ID)
	}
}

func TestConfigCache_FetchErrorWithoutEntryIsNotFound(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.setFetchErr(errors.New("dial tcp: timeout"))
	cache := NewConfigCache(fetcher, time.Minute, nil)

	_, err := cache.Get(context.Background(), "gw1")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get() error = %v, want *NotFoundError", err)
	}
}

func TestConfigCache_Preload(t *testing.T) {
	fetcher := newFakeFetcher(
		&Config{ID: "gw1", Name: "One"},
		&Config{ID: "gw2", Name: "Two"},
	)
	cache := NewConfigCache(fetcher, time.Minute, nil)

	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	if cache.Size() != 2 {
		t.Errorf("Size() after preload = %d, want 2", cache.Size())
	}

	// Preloaded records are served without an extra fetch.
	if _, err := cache.Get(context.Background(), "gw2"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := fetcher.fetchCount(); got != 0 {
		t.Errorf("fetch count after preloaded Get = %d, want 0", got)
	}
}

func TestConfigCache_PreloadFailureIsNonFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.listErr = errors.New("service unavailable")
	cache := NewConfigCache(fetcher, time.Minute, nil)

	if err := cache.Preload(context.Background()); err == nil {
		t.Error("Preload() error = nil, want error for logging")
	}
	if cache.Size() != 0 {
		t.Errorf("Size() after failed preload = %d, want 0", cache.Size())
	}
}

func TestConfigCache_InvalidateAndClear(t *testing.T) {
	fetcher := newFakeFetcher(
		&Config{ID: "gw1"},
		&Config{ID: "gw2"},
	)
	cache := NewConfigCache(fetcher, time.Minute, nil)
	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}

	cache.Invalidate("gw1")
	if cache.Size() != 1 {
		t.Errorf("Size() after Invalidate = %d, want 1", cache.Size())
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", cache.Size())
	}
}

func TestConfigCache_Stats(t *testing.T) {
	fetcher := newFakeFetcher(
		&Config{ID: "bravo"},
		&Config{ID: "alpha"},
	)
	cache := NewConfigCache(fetcher, time.Minute, nil)
	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}

	stats := cache.Stats()
	if stats.Size != 2 {
		t.Errorf("Stats().Size = %d, want 2", stats.Size)
	}
	if len(stats.Keys) != 2 || stats.Keys[0] != "alpha" || stats.Keys[1] != "bravo" {
		t.Errorf("Stats().Keys = %v, want [alpha bravo]", stats.Keys)
	}
}

func TestConfigCache_ConcurrentAccess(t *testing.T) {
	configs := make([]*Config, 10)
	for i := range configs {
		configs[i] = &Config{ID: fmt.Sprintf("gw%d", i)}
	}
	fetcher := newFakeFetcher(configs...)
	cache := NewConfigCache(fetcher, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("gw%d", i%10)
			if _, err := cache.Get(context.Background(), id); err != nil {
				t.Errorf("concurrent Get(%s) error = %v", id, err)
			}
			if i%7 == 0 {
				cache.Invalidate(id)
			}
			_ = cache.Stats()
		}(i)
	}
	wg.Wait()
}

func TestConfigCache_ReturnsCopy(t *testing.T) {
	fetcher := newFakeFetcher(&Config{
		ID:        "gw1",
		Name:      "original",
		RateLimit: &RateLimit{Limit: 100, Interval: 60, Technique: "fixed"},
	})
	cache := NewConfigCache(fetcher, time.Minute, nil)

	first, err := cache.Get(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	first.Name = "mutated"
	first.RateLimit.Limit = 1

	second, err := cache.Get(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if second.Name != "original" {
		t.Errorf("cached record mutated through returned snapshot: Name = %q", second.Name)
	}
	if second.RateLimit.Limit != 100 {
		t.Errorf("cached record mutated through shared RateLimit pointer: Limit = %d, want 100", second.RateLimit.Limit)
	}
	if second.RateLimit == first.RateLimit {
		t.Error("snapshots share a RateLimit pointer, want distinct copies")
	}
}

func TestConfigCache_LookupObserver(t *testing.T) {
	fetcher := newFakeFetcher(&Config{ID: "gw1"})
	cache := NewConfigCache(fetcher, time.Minute, nil)

	var outcomes []string
	cache.SetLookupObserver(func(outcome string) {
		outcomes = append(outcomes, outcome)
	})

	if _, err := cache.Get(context.Background(), "gw1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := cache.Get(context.Background(), "gw1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := cache.Get(context.Background(), "missing"); err == nil {
		t.Fatal("Get(missing) expected error, got nil")
	}

	want := []string{"miss", "hit", "error"}
	if len(outcomes) != len(want) {
		t.Fatalf("outcomes = %v, want %v", outcomes, want)
	}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Errorf("outcomes[%d] = %q, want %q", i, outcomes[i], want[i])
		}
	}
}
