package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sanshu/iconcache/store"
	"github.com/sanshu/iconcache/types"
	"golang.org/x/sync/singleflight"
)

// LoadFunc fetches the value for a key from the provider.
type LoadFunc func(ctx context.Context) (any, error)

/*
Engine is the read-through layer shared by search and content resolution.

It decides:
- Whether the store already has a fresh value
- Which caller actually talks to the provider on a miss
- What gets written back into the store

It does NOT:
- Build keys
- Validate input
- Translate provider responses
*/
type Engine struct {
	store   *store.Store
	metrics types.Metrics
	logger  *slog.Logger

	// fetchTimeout bounds a shared fetch once it is detached from its
	// initiating caller. 0 means no bound.
	fetchTimeout time.Duration

	// sf is the in-flight registry: one pending call per key, removed
	// when the call settles.
	sf singleflight.Group
}

func New(s *store.Store, metrics types.Metrics, logger *slog.Logger, fetchTimeout time.Duration) *Engine {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:        s,
		metrics:      metrics,
		logger:       logger,
		fetchTimeout: fetchTimeout,
	}
}

/*
Get returns the cached value for key, or loads it.

BEHAVIOR:
---------
 1. Fresh entry in the store: returned immediately, no load.
 2. Miss: the first caller starts load; every caller arriving while it
    is in flight waits for that same result.
 3. A successful load is inserted with the store's TTL. An entry too big
    for the budget is logged and skipped; the value is still returned.
 4. A failed load is returned to every waiter and nothing is cached.

Cancelling ctx only stops this caller's wait. The load itself runs with
a context detached from any single caller, so the others still get it
and the store is still filled.
*/
func (e *Engine) Get(ctx context.Context, key string, load LoadFunc) (any, error) {
	if ent, ok := e.store.Lookup(key); ok {
		e.logger.Debug("cache hit", "key", key)
		return ent.Value, nil
	}

	ch := e.sf.DoChan(key, func() (any, error) {
		// A flight for this key may have settled between our lookup and
		// joining the registry.
		if ent, ok := e.store.Peek(key); ok {
			return ent.Value, nil
		}
		return e.fetch(ctx, key, load)
	})

	select {
	case res := <-ch:
		if res.Shared {
			e.metrics.Shared()
		}
		return res.Val, res.Err
	case <-ctx.Done():
		e.logger.Debug("caller stopped waiting for fetch", "key", key, "error", ctx.Err())
		return nil, ctx.Err()
	}
}

// Store exposes the underlying store for components that seed it directly.
func (e *Engine) Store() *store.Store {
	return e.store
}

func (e *Engine) fetch(ctx context.Context, key string, load LoadFunc) (any, error) {
	fctx := context.WithoutCancel(ctx)
	if e.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, e.fetchTimeout)
		defer cancel()
	}

	e.metrics.Fetch()
	start := time.Now()
	val, err := load(fctx)
	if err != nil {
		e.logger.Warn("provider fetch failed", "key", key, "error", err)
		return nil, err
	}
	e.logger.Info("provider fetch completed", "key", key, "duration", time.Since(start))

	e.Put(key, val)
	return val, nil
}

// Put writes val into the store. A capacity rejection is logged and
// swallowed; other errors cannot occur.
func (e *Engine) Put(key string, val any) {
	if err := e.store.Insert(key, val, 0); err != nil {
		var capErr *types.CapacityError
		if errors.As(err, &capErr) {
			e.logger.Debug("entry too large to cache", "key", key, "size", capErr.Size, "budget", capErr.Budget)
			return
		}
		e.logger.Error("cache insert failed", "key", key, "error", err)
	}
}
