package types

import "context"

// ProviderQuery is a search request translated for the provider.
// Every field is already canonical; "all" means no filter.
type ProviderQuery struct {
	Query          string
	Style          Style
	Fills          Fills
	SortType       SortType
	Page           int
	PageSize       int
	FromCollection bool
}

// RawIcon is one icon as the provider describes it, before normalisation.
type RawIcon struct {
	ID             uint64
	Name           string
	FontClass      string
	Unicode        string
	ShowSVG        string
	PreviewURL     string
	Author         string
	RepositoryName string
	RepositoryID   uint64
	CreatedAt      string
}

// RawSearchResult is the provider's answer to a ProviderQuery.
// Count is the provider's total match count across all pages.
type RawSearchResult struct {
	Icons []RawIcon
	Count int
}

// ContentQuery asks the provider for one icon's content.
// Size is only meaningful for FormatPNG.
type ContentQuery struct {
	ID     uint64
	Format Format
	Size   int
}

// RawContent is the provider's content payload: SVG markup or PNG bytes.
type RawContent struct {
	Name     string
	Data     []byte
	MimeType string
}

/*
IconFetcher is the contract between the cache and the icon provider.

The cache only calls it on a miss, and never more than once at a time
for the same key. Implementations should:
  - return an error wrapping ErrNotFound when the icon id is unknown
  - return *ProviderError (or any other error) for upstream failures

Errors are never cached, so the next identical request retries.
*/
type IconFetcher interface {

	// SearchIcons runs one paged search against the provider.
	SearchIcons(ctx context.Context, q ProviderQuery) (RawSearchResult, error)

	// FetchContent fetches one icon's SVG markup or PNG raster.
	FetchContent(ctx context.Context, q ContentQuery) (RawContent, error)
}
