// Package search answers paged icon searches from the cache or the provider.
package search

import (
	"context"
	"log/slog"

	"github.com/sanshu/iconcache/engine"
	"github.com/sanshu/iconcache/key"
	"github.com/sanshu/iconcache/types"
)

// SVGSeeder receives icons whose markup arrived with a search result.
type SVGSeeder interface {
	SeedSVG(icon types.IconMetadata)
}

// Coordinator validates, keys and resolves search requests.
type Coordinator struct {
	engine  *engine.Engine
	fetcher types.IconFetcher
	limits  Limits
	seeder  SVGSeeder
	logger  *slog.Logger
}

func NewCoordinator(e *engine.Engine, f types.IconFetcher, limits Limits, logger *slog.Logger) *Coordinator {
	if limits.DefaultPageSize == 0 {
		limits.DefaultPageSize = DefaultLimits.DefaultPageSize
	}
	if limits.MaxPageSize == 0 {
		limits.MaxPageSize = DefaultLimits.MaxPageSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{engine: e, fetcher: f, limits: limits, logger: logger}
}

// SetSeeder enables SVG seeding from fresh search results. nil disables it.
func (c *Coordinator) SetSeeder(s SVGSeeder) {
	c.seeder = s
}

// Key returns the cache key p resolves to, after validation.
func (c *Coordinator) Key(p types.SearchParams) (string, error) {
	cp, err := c.limits.Canonical(p)
	if err != nil {
		return "", err
	}
	return key.Search(cp), nil
}

/*
Search returns one page of results.

Invalid params fail with *types.ValidationError before the cache is
consulted. A miss calls the provider once per key, however many callers
are waiting; a provider failure comes back as *types.ProviderError and is
not cached. The returned page is a private copy.
*/
func (c *Coordinator) Search(ctx context.Context, p types.SearchParams) (types.SearchResultPage, error) {
	cp, err := c.limits.Canonical(p)
	if err != nil {
		return types.SearchResultPage{}, err
	}
	k := key.Search(cp)

	v, err := c.engine.Get(ctx, k, func(fctx context.Context) (any, error) {
		raw, err := c.fetcher.SearchIcons(fctx, types.ProviderQuery{
			Query:          cp.Query,
			Style:          cp.Style,
			Fills:          cp.Fills,
			SortType:       cp.SortType,
			Page:           cp.Page,
			PageSize:       cp.PageSize,
			FromCollection: cp.FromCollection,
		})
		if err != nil {
			return nil, types.AsProviderError("search", err)
		}

		page := Page(cp, raw)
		c.seed(page)
		c.logger.Debug("search page normalised",
			"query", cp.Query, "page", page.Page, "icons", len(page.Icons), "total", page.Total)
		return page, nil
	})
	if err != nil {
		return types.SearchResultPage{}, err
	}
	return v.(types.SearchResultPage).Clone(), nil
}

func (c *Coordinator) seed(page types.SearchResultPage) {
	if c.seeder == nil {
		return
	}
	for _, icon := range page.Icons {
		if icon.SVG != "" {
			c.seeder.SeedSVG(icon)
		}
	}
}
