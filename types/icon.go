package types

// This file defines the canonical in-memory shapes the core works with.
// Wire naming (snake_case) is handled by the ipc package, not here.

// Style filters icons by drawing style.
type Style string

const (
	StyleAll  Style = "all"
	StyleLine Style = "line"
	StyleFill Style = "fill"
	StyleFlat Style = "flat"
)

// Fills filters icons by colour count.
type Fills string

const (
	FillsAll    Fills = "all"
	FillsSingle Fills = "single"
	FillsMulti  Fills = "multi"
)

// SortType orders provider results.
type SortType string

const (
	SortRelate SortType = "relate"
	SortNew    SortType = "new"
	SortHot    SortType = "hot"
)

// Format selects which representation of an icon to resolve.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatBoth Format = "both"
)

const (
	MimeSVG = "image/svg+xml"
	MimePNG = "image/png"
)

// SearchParams is a caller's search request. Zero values mean "omitted"
// and are replaced by canonical defaults before keying and fetching.
type SearchParams struct {
	Query          string
	Style          Style
	Fills          Fills
	SortType       SortType
	Page           int
	PageSize       int
	FromCollection bool
}

// IconMetadata describes one icon as normalised from a provider response.
type IconMetadata struct {
	ID             uint64
	Name           string
	FontClass      string
	Unicode        string
	SVG            string
	PreviewURL     string
	Author         string
	RepositoryName string
	RepositoryID   uint64
	CreatedAt      string
}

// SearchResultPage is one page of results. HasMore is always
// Page*PageSize < Total.
type SearchResultPage struct {
	Icons    []IconMetadata
	Total    int
	Page     int
	PageSize int
	HasMore  bool
}

// Clone returns a copy whose Icons slice is not shared with p.
func (p SearchResultPage) Clone() SearchResultPage {
	out := p
	if p.Icons != nil {
		out.Icons = make([]IconMetadata, len(p.Icons))
		copy(out.Icons, p.Icons)
	}
	return out
}

// ContentResult is the renderable content of one icon.
// SVG is set for svg and both, PNGBase64 for png and both.
type ContentResult struct {
	ID        uint64
	Name      string
	Format    Format
	Size      int
	SVG       string
	PNGBase64 string
	MimeType  string
}
