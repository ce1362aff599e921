// Package admin exposes cache statistics and explicit eviction.
package admin

import (
	"log/slog"

	"github.com/sanshu/iconcache/store"
	"github.com/sanshu/iconcache/types"
)

// Keyer maps a request to the cache key it would use.
type Keyer interface {
	SearchKey(p types.SearchParams) (string, error)
	ContentKey(id uint64, format types.Format, size int) (string, error)
}

// Admin operations are idempotent and take effect immediately.
type Admin struct {
	store    *store.Store
	counters *types.Counters
	keys     Keyer
	logger   *slog.Logger
}

// New returns an Admin over s. counters and keys may be nil.
func New(s *store.Store, counters *types.Counters, keys Keyer, logger *slog.Logger) *Admin {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Admin{store: s, counters: counters, keys: keys, logger: logger}
}

// GetStats returns a freshly computed snapshot.
func (a *Admin) GetStats() types.CacheStats {
	st := a.store.Stats()
	if a.counters != nil {
		st.Counters = a.counters.Snapshot()
	}
	return st
}

// ClearCache removes expired entries, or everything when expiredOnly is false.
func (a *Admin) ClearCache(expiredOnly bool) types.ClearResult {
	pred := store.All
	if expiredOnly {
		pred = store.Expired
	}
	cleared, remaining := a.store.Clear(pred)
	res := types.ClearResult{ClearedCount: cleared, RemainingCount: remaining}
	a.logger.Info("cache cleared", "expired_only", expiredOnly, "cleared", cleared, "remaining", res.RemainingCount)
	return res
}

// InvalidateContent drops one cached icon representation. FormatBoth
// drops the svg entry and the png entry at size.
func (a *Admin) InvalidateContent(id uint64, format types.Format, size int) (bool, error) {
	if a.keys == nil {
		return false, nil
	}
	formats := []types.Format{format}
	if format == types.FormatBoth {
		formats = []types.Format{types.FormatSVG, types.FormatPNG}
	}

	removed := false
	for _, f := range formats {
		k, err := a.keys.ContentKey(id, f, size)
		if err != nil {
			return removed, err
		}
		if a.store.Invalidate(k) {
			removed = true
		}
	}
	a.logger.Debug("content invalidated", "id", id, "format", format, "size", size, "removed", removed)
	return removed, nil
}

// InvalidateSearch drops one cached search page.
func (a *Admin) InvalidateSearch(p types.SearchParams) (bool, error) {
	if a.keys == nil {
		return false, nil
	}
	k, err := a.keys.SearchKey(p)
	if err != nil {
		return false, err
	}
	return a.store.Invalidate(k), nil
}
