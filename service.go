// Package iconcache caches icon searches and icon content in front of an
// icon provider.
package iconcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanshu/iconcache/admin"
	"github.com/sanshu/iconcache/api"
	"github.com/sanshu/iconcache/config"
	"github.com/sanshu/iconcache/content"
	"github.com/sanshu/iconcache/engine"
	"github.com/sanshu/iconcache/eviction"
	"github.com/sanshu/iconcache/search"
	"github.com/sanshu/iconcache/store"
	"github.com/sanshu/iconcache/sweep"
	"github.com/sanshu/iconcache/types"
)

var _ api.IconService = (*Service)(nil)

/*
Service is the main implementation of api.IconService.
It is the orchestrator that connects:
- the store and its bounds
- the read-through engine
- search and content resolution
- administration and the background sweep
*/
type Service struct {
	store    *store.Store
	engine   *engine.Engine
	search   *search.Coordinator
	content  *content.Resolver
	admin    *admin.Admin
	sweeper  *sweep.Sweeper
	counters *types.Counters
	logger   *slog.Logger
}

// Option customises a Service at construction.
type Option func(*serviceOptions)

type serviceOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now for every TTL decision.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// NewService wires a Service from cfg around fetcher. A nil cfg uses
// config.Default. The returned Service must be closed.
func NewService(cfg *config.Config, fetcher types.IconFetcher, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}

	counters := &types.Counters{}
	s, err := store.New(store.Options{
		TTL:        cfg.Cache.TTL,
		MaxBytes:   cfg.Cache.MaxMemoryBytes(),
		MaxEntries: cfg.Cache.MaxEntries,
		Policy:     eviction.PolicyType(cfg.Cache.EvictionPolicy),
		Now:        o.now,
		Metrics:    counters,
	})
	if err != nil {
		return nil, err
	}

	e := engine.New(s, counters, logger.With("component", "engine"), cfg.Provider.Timeout)

	coord := search.NewCoordinator(e, fetcher, search.Limits{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		DefaultSort:     types.SortType(cfg.Search.DefaultSort),
	}, logger.With("component", "search"))

	resolver := content.NewResolver(e, fetcher, content.Limits{
		DefaultPNGSize: cfg.Content.DefaultPNGSize,
		MaxPNGSize:     cfg.Content.MaxPNGSize,
	}, logger.With("component", "content"))

	if cfg.Content.SeedSVGFromSearch {
		coord.SetSeeder(resolver)
	}

	svc := &Service{
		store:    s,
		engine:   e,
		search:   coord,
		content:  resolver,
		admin:    admin.New(s, counters, keyer{search: coord, content: resolver}, logger.With("component", "admin")),
		counters: counters,
		logger:   logger,
	}
	if cfg.Cache.SweepInterval > 0 {
		svc.sweeper = sweep.Start(s, cfg.Cache.SweepInterval, logger.With("component", "sweep"))
	}

	logger.Info("icon cache ready",
		"ttl", cfg.Cache.TTL,
		"max_entries", cfg.Cache.MaxEntries,
		"max_memory_mb", cfg.Cache.MaxMemoryMB,
		"sweep_interval", cfg.Cache.SweepInterval,
	)
	return svc, nil
}

func (s *Service) Search(ctx context.Context, p types.SearchParams) (types.SearchResultPage, error) {
	return s.search.Search(ctx, p)
}

func (s *Service) ResolveContent(ctx context.Context, id uint64, format types.Format, size int) (types.ContentResult, error) {
	return s.content.ResolveContent(ctx, id, format, size)
}

func (s *Service) Stats() types.CacheStats {
	return s.admin.GetStats()
}

func (s *Service) ClearCache(expiredOnly bool) types.ClearResult {
	return s.admin.ClearCache(expiredOnly)
}

func (s *Service) InvalidateContent(id uint64, format types.Format, size int) (bool, error) {
	return s.admin.InvalidateContent(id, format, size)
}

// InvalidateSearch drops the cached page p would hit.
func (s *Service) InvalidateSearch(p types.SearchParams) (bool, error) {
	return s.admin.InvalidateSearch(p)
}

/*
Close stops the background sweep. Cached data is dropped with the Service;
nothing is persisted. Close is safe to call more than once.
*/
func (s *Service) Close() {
	if s.sweeper != nil {
		s.sweeper.Close()
	}
	s.logger.Debug("icon cache closed", "entries", s.store.Len())
}

// keyer lets admin address entries without knowing the key format.
type keyer struct {
	search  *search.Coordinator
	content *content.Resolver
}

func (k keyer) SearchKey(p types.SearchParams) (string, error) {
	return k.search.Key(p)
}

func (k keyer) ContentKey(id uint64, format types.Format, size int) (string, error) {
	return k.content.Key(id, format, size)
}
