package iconcache_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	iconcache "github.com/sanshu/iconcache"
	"github.com/sanshu/iconcache/config"
	"github.com/sanshu/iconcache/types"
)

//
// ================= TEST PROVIDER =================
//

// TestProvider serves a fixed catalogue and counts every call it receives.
type TestProvider struct {
	mu       sync.Mutex
	total    int
	delay    time.Duration
	pngBytes int
	searches map[string]int
	contents map[string]int
}

func NewTestProvider(total int) *TestProvider {
	return &TestProvider{
		total:    total,
		searches: make(map[string]int),
		contents: make(map[string]int),
	}
}

func (p *TestProvider) SearchIcons(ctx context.Context, q types.ProviderQuery) (types.RawSearchResult, error) {
	p.mu.Lock()
	p.searches[q.Query]++
	delay := p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return types.RawSearchResult{}, ctx.Err()
		}
	}

	res := types.RawSearchResult{Count: p.total}
	start := (q.Page - 1) * q.PageSize
	for i := start; i < min(start+q.PageSize, p.total); i++ {
		res.Icons = append(res.Icons, types.RawIcon{
			ID:      uint64(i + 1),
			Name:    fmt.Sprintf("%s-%d", q.Query, i+1),
			ShowSVG: fmt.Sprintf(`<svg id="%d"/>`, i+1),
		})
	}
	return res, nil
}

func (p *TestProvider) FetchContent(_ context.Context, q types.ContentQuery) (types.RawContent, error) {
	p.mu.Lock()
	p.contents[fmt.Sprintf("%d:%s:%d", q.ID, q.Format, q.Size)]++
	size := p.pngBytes
	p.mu.Unlock()

	if q.ID > uint64(p.total) {
		return types.RawContent{}, types.ErrNotFound
	}
	if q.Format == types.FormatPNG {
		if size == 0 {
			size = 16
		}
		return types.RawContent{Name: fmt.Sprintf("icon-%d", q.ID), Data: bytes.Repeat([]byte{byte(q.Size)}, size)}, nil
	}
	return types.RawContent{Name: fmt.Sprintf("icon-%d", q.ID), Data: []byte(fmt.Sprintf(`<svg id="%d"/>`, q.ID))}, nil
}

func (p *TestProvider) SearchCalls(q string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searches[q]
}

func (p *TestProvider) ContentCalls(id uint64, f types.Format, size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contents[fmt.Sprintf("%d:%s:%d", id, f, size)]
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

//
// ================= HELPER: CREATE SERVICE =================
//

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Cache.SweepInterval = 0
	return cfg
}

func newTestService(t *testing.T, cfg *config.Config, p *TestProvider) (*iconcache.Service, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := iconcache.NewService(cfg, p, nil, iconcache.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc, clock
}

//
// ================= SEARCH =================
//

func TestSearchNormalisedQueriesHitOnce(t *testing.T) {
	p := NewTestProvider(10)
	svc, _ := newTestService(t, testConfig(), p)
	ctx := context.Background()

	for _, q := range []string{"settings", "  Settings  ", "SETTINGS"} {
		if _, err := svc.Search(ctx, types.SearchParams{Query: q}); err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
	}
	if n := p.SearchCalls("settings"); n != 1 {
		t.Fatalf("expected 1 provider call, got %d", n)
	}
	if st := svc.Stats(); st.Counters.Hits != 2 || st.Counters.Fetches != 1 {
		t.Fatalf("unexpected counters %+v", st.Counters)
	}
}

func TestSearchExpiryRefetchesOnce(t *testing.T) {
	p := NewTestProvider(10)
	svc, clock := newTestService(t, testConfig(), p)
	ctx := context.Background()

	_, _ = svc.Search(ctx, types.SearchParams{Query: "home"})
	clock.Advance(31 * time.Minute)
	_, _ = svc.Search(ctx, types.SearchParams{Query: "home"})
	_, _ = svc.Search(ctx, types.SearchParams{Query: "home"})

	if n := p.SearchCalls("home"); n != 2 {
		t.Fatalf("expected exactly 2 provider calls, got %d", n)
	}
}

func TestConcurrentSearchFetchesOnce(t *testing.T) {
	p := NewTestProvider(30)
	p.delay = 50 * time.Millisecond
	svc, _ := newTestService(t, testConfig(), p)

	const n = 20
	var wg sync.WaitGroup
	totals := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page, err := svc.Search(context.Background(), types.SearchParams{Query: "arrow"})
			if err != nil {
				t.Errorf("search: %v", err)
				return
			}
			totals[i] = len(page.Icons)
		}(i)
	}
	wg.Wait()

	if c := p.SearchCalls("arrow"); c != 1 {
		t.Fatalf("expected 1 provider call, got %d", c)
	}
	for i, got := range totals {
		if got != 30 {
			t.Fatalf("caller %d saw %d icons", i, got)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	p := NewTestProvider(120)
	svc, _ := newTestService(t, testConfig(), p)
	ctx := context.Background()

	first, err := svc.Search(ctx, types.SearchParams{Query: "settings", Page: 1, PageSize: 50})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if first.Total != 120 || !first.HasMore || len(first.Icons) != 50 {
		t.Fatalf("unexpected page 1: total=%d hasMore=%v icons=%d", first.Total, first.HasMore, len(first.Icons))
	}

	third, err := svc.Search(ctx, types.SearchParams{Query: "settings", Page: 3, PageSize: 50})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if third.HasMore || len(third.Icons) != 20 {
		t.Fatalf("unexpected page 3: hasMore=%v icons=%d", third.HasMore, len(third.Icons))
	}
}

func TestSearchSeedsSVGContent(t *testing.T) {
	p := NewTestProvider(5)
	svc, _ := newTestService(t, testConfig(), p)
	ctx := context.Background()

	_, _ = svc.Search(ctx, types.SearchParams{Query: "bell"})

	res, err := svc.ResolveContent(ctx, 3, types.FormatSVG, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.SVG != `<svg id="3"/>` {
		t.Fatalf("unexpected svg %q", res.SVG)
	}
	if n := p.ContentCalls(3, types.FormatSVG, 0); n != 0 {
		t.Fatalf("seeded svg should not be fetched, got %d calls", n)
	}
}

func TestSeedingDisabled(t *testing.T) {
	p := NewTestProvider(5)
	cfg := testConfig()
	cfg.Content.SeedSVGFromSearch = false
	svc, _ := newTestService(t, cfg, p)
	ctx := context.Background()

	_, _ = svc.Search(ctx, types.SearchParams{Query: "bell"})
	_, _ = svc.ResolveContent(ctx, 3, types.FormatSVG, 0)

	if n := p.ContentCalls(3, types.FormatSVG, 0); n != 1 {
		t.Fatalf("expected a fetch with seeding off, got %d calls", n)
	}
}

//
// ================= CONTENT =================
//

func TestPNGSizesIndependent(t *testing.T) {
	p := NewTestProvider(50)
	svc, _ := newTestService(t, testConfig(), p)
	ctx := context.Background()

	_, _ = svc.ResolveContent(ctx, 42, types.FormatPNG, 64)
	_, _ = svc.ResolveContent(ctx, 42, types.FormatPNG, 128)

	ok, err := svc.InvalidateContent(42, types.FormatPNG, 64)
	if err != nil || !ok {
		t.Fatalf("invalidate: %v, %v", ok, err)
	}

	_, _ = svc.ResolveContent(ctx, 42, types.FormatPNG, 128)
	_, _ = svc.ResolveContent(ctx, 42, types.FormatPNG, 64)

	if n := p.ContentCalls(42, types.FormatPNG, 128); n != 1 {
		t.Fatalf("128px should still be cached, got %d calls", n)
	}
	if n := p.ContentCalls(42, types.FormatPNG, 64); n != 2 {
		t.Fatalf("64px should be refetched, got %d calls", n)
	}
}

func TestUnknownIcon(t *testing.T) {
	p := NewTestProvider(5)
	svc, _ := newTestService(t, testConfig(), p)

	_, err := svc.ResolveContent(context.Background(), 99, types.FormatSVG, 0)
	var nf *types.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if st := svc.Stats(); st.TotalEntries != 0 {
		t.Fatalf("not-found must not be cached: %+v", st)
	}
}

//
// ================= CAPACITY =================
//

func TestMemoryBudgetEvictsOldest(t *testing.T) {
	p := NewTestProvider(10)
	p.pngBytes = 300_000 // ~400KB once base64-encoded
	cfg := testConfig()
	cfg.Cache.MaxMemoryMB = 1
	svc, clock := newTestService(t, cfg, p)
	ctx := context.Background()

	for id := uint64(1); id <= 3; id++ {
		if _, err := svc.ResolveContent(ctx, id, types.FormatPNG, 64); err != nil {
			t.Fatalf("resolve %d: %v", id, err)
		}
		clock.Advance(time.Second)
	}

	st := svc.Stats()
	if st.MemoryUsageBytes > 1<<20 {
		t.Fatalf("usage %d exceeds budget", st.MemoryUsageBytes)
	}
	if st.Counters.Evictions == 0 {
		t.Fatal("expected at least one eviction")
	}

	// newest survives, oldest is gone
	_, _ = svc.ResolveContent(ctx, 3, types.FormatPNG, 64)
	_, _ = svc.ResolveContent(ctx, 1, types.FormatPNG, 64)
	if n := p.ContentCalls(3, types.FormatPNG, 64); n != 1 {
		t.Fatalf("newest entry was evicted (%d calls)", n)
	}
	if n := p.ContentCalls(1, types.FormatPNG, 64); n != 2 {
		t.Fatalf("oldest entry should have been evicted (%d calls)", n)
	}
}

//
// ================= ADMIN =================
//

func TestClearExpiredTwice(t *testing.T) {
	p := NewTestProvider(10)
	svc, clock := newTestService(t, testConfig(), p)
	ctx := context.Background()

	_, _ = svc.Search(ctx, types.SearchParams{Query: "old"})
	clock.Advance(time.Hour)
	_, _ = svc.Search(ctx, types.SearchParams{Query: "new"})

	st := svc.Stats()
	if st.ExpiredEntries == 0 || st.ValidEntries == 0 {
		t.Fatalf("expected a mix of valid and expired entries: %+v", st)
	}

	first := svc.ClearCache(true)
	if first.ClearedCount != st.ExpiredEntries {
		t.Fatalf("expected %d cleared, got %+v", st.ExpiredEntries, first)
	}
	if second := svc.ClearCache(true); second.ClearedCount != 0 {
		t.Fatalf("second clear should be a no-op, got %+v", second)
	}
}

func TestInvalidateSearch(t *testing.T) {
	p := NewTestProvider(10)
	svc, _ := newTestService(t, testConfig(), p)
	ctx := context.Background()

	_, _ = svc.Search(ctx, types.SearchParams{Query: "cloud"})
	ok, err := svc.InvalidateSearch(types.SearchParams{Query: " CLOUD "})
	if err != nil || !ok {
		t.Fatalf("invalidate: %v, %v", ok, err)
	}
	_, _ = svc.Search(ctx, types.SearchParams{Query: "cloud"})
	if n := p.SearchCalls("cloud"); n != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", n)
	}
}

func TestNewServiceRejectsUnknownPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.EvictionPolicy = "lfu"
	if _, err := iconcache.NewService(cfg, NewTestProvider(1), nil); err == nil {
		t.Fatal("expected error for unknown eviction policy")
	}
}

func TestCloseWithSweeper(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.SweepInterval = 10 * time.Millisecond
	svc, err := iconcache.NewService(cfg, NewTestProvider(1), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.Close()
	svc.Close()
}
