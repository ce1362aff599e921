package search

import (
	"strconv"

	"github.com/sanshu/iconcache/types"
)

// Metadata converts a provider icon. A missing name falls back to icon_<id>.
func Metadata(raw types.RawIcon) types.IconMetadata {
	name := raw.Name
	if name == "" {
		name = "icon_" + strconv.FormatUint(raw.ID, 10)
	}
	return types.IconMetadata{
		ID:             raw.ID,
		Name:           name,
		FontClass:      raw.FontClass,
		Unicode:        raw.Unicode,
		SVG:            raw.ShowSVG,
		PreviewURL:     raw.PreviewURL,
		Author:         raw.Author,
		RepositoryName: raw.RepositoryName,
		RepositoryID:   raw.RepositoryID,
		CreatedAt:      raw.CreatedAt,
	}
}

// Page turns a raw provider result into the page p asked for.
//
// Provider order is kept and duplicate ids dropped. A result is treated as
// unpaged, and sliced at the page offset, when it holds more than one page
// or when a later page came back with every match the provider counted.
// A positive provider count is the total. Without one, the total is what
// has been seen, plus one while pages come back full so HasMore holds.
func Page(p types.SearchParams, raw types.RawSearchResult) types.SearchResultPage {
	offset := (p.Page - 1) * p.PageSize

	unpaged := len(raw.Icons) > p.PageSize ||
		(offset > 0 && raw.Count > 0 && len(raw.Icons) >= raw.Count)

	icons := raw.Icons
	if unpaged {
		if offset >= len(icons) {
			icons = nil
		} else {
			icons = icons[offset:min(offset+p.PageSize, len(icons))]
		}
	}

	out := make([]types.IconMetadata, 0, len(icons))
	seen := make(map[uint64]struct{}, len(icons))
	for _, ri := range icons {
		if _, dup := seen[ri.ID]; dup {
			continue
		}
		seen[ri.ID] = struct{}{}
		out = append(out, Metadata(ri))
	}

	var total int
	switch {
	case raw.Count > 0:
		total = raw.Count
	case unpaged:
		total = len(raw.Icons)
	default:
		total = offset + len(out)
		if len(raw.Icons) >= p.PageSize {
			total++
		}
	}

	return types.SearchResultPage{
		Icons:    out,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  p.Page*p.PageSize < total,
	}
}
