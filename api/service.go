package api

import (
	"context"

	"github.com/sanshu/iconcache/types"
)

/*
IconService defines the PUBLIC API of the icon cache.
Keys, the in-flight registry, eviction and expiry stay behind it; callers
only ever see icons, pages and stats.
*/
type IconService interface {

	/*
		Search returns one page of icons for p.

		BEHAVIOR:
		---------
		1. p is validated and canonicalised first. Bad input fails with
		   *types.ValidationError and never reaches the cache.

		2. If an equivalent, unexpired page is cached:
		   - It is returned without contacting the provider

		3. Otherwise:
		   - One provider call is made per key, however many callers wait
		   - The page is cached for the configured TTL
		   - SVG markup carried by the results seeds content entries

		Provider failures are returned as-is and are never cached.
	*/
	Search(ctx context.Context, p types.SearchParams) (types.SearchResultPage, error)

	/*
		ResolveContent returns the SVG or PNG content of icon id.

		BEHAVIOR:
		---------
		- size only matters for png; 0 picks the configured default
		- each (id, format, size) is its own entry
		- "both" resolves svg and png independently and merges them; it
		  fails if either half fails, so it needs a fetcher that serves png
		  (the iconfont client does not)
		- unknown ids fail with *types.NotFoundError, which is not cached
	*/
	ResolveContent(ctx context.Context, id uint64, format types.Format, size int) (types.ContentResult, error)

	// Stats computes a fresh snapshot of the cache.
	Stats() types.CacheStats

	/*
		ClearCache removes entries immediately.

		expiredOnly=true drops only stale entries, so running it twice in a
		row reports 0 the second time. expiredOnly=false drops everything.
	*/
	ClearCache(expiredOnly bool) types.ClearResult

	// InvalidateContent drops one cached representation and reports
	// whether it was present.
	InvalidateContent(id uint64, format types.Format, size int) (bool, error)

	// Close stops background work. The service must not be used afterwards.
	Close()
}
