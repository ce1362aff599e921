package ipc

import (
	"time"

	"github.com/sanshu/iconcache/types"
)

// This file maps between wire shapes and the core types.

func (a SearchArgs) params() types.SearchParams {
	return types.SearchParams{
		Query:          a.Query,
		Style:          types.Style(a.Style),
		Fills:          types.Fills(a.Fills),
		SortType:       types.SortType(a.SortType),
		Page:           a.Page,
		PageSize:       a.PageSize,
		FromCollection: a.FromCollection,
	}
}

func (a ContentArgs) format() types.Format {
	if a.Format == "" {
		return types.FormatSVG
	}
	return types.Format(a.Format)
}

func toSearchResult(p types.SearchResultPage) SearchResult {
	out := SearchResult{
		Icons:    make([]Icon, 0, len(p.Icons)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  p.HasMore,
	}
	for _, icon := range p.Icons {
		out.Icons = append(out.Icons, Icon{
			ID:             icon.ID,
			Name:           icon.Name,
			FontClass:      icon.FontClass,
			Unicode:        icon.Unicode,
			SVGContent:     icon.SVG,
			PreviewURL:     icon.PreviewURL,
			Author:         icon.Author,
			RepositoryName: icon.RepositoryName,
			RepositoryID:   icon.RepositoryID,
			CreatedAt:      icon.CreatedAt,
		})
	}
	return out
}

func toContent(c types.ContentResult) Content {
	out := Content{
		ID:         c.ID,
		Name:       c.Name,
		Format:     string(c.Format),
		SVGContent: c.SVG,
		PNGBase64:  c.PNGBase64,
		MimeType:   c.MimeType,
	}
	if c.Format != types.FormatSVG {
		out.PNGSize = c.Size
	}
	return out
}

func toStats(st types.CacheStats) Stats {
	return Stats{
		TotalEntries:       st.TotalEntries,
		ValidEntries:       st.ValidEntries,
		ExpiredEntries:     st.ExpiredEntries,
		CacheExpiryMinutes: int(st.TTL / time.Minute),
		TTLSeconds:         int64(st.TTL / time.Second),
		MemoryUsageBytes:   st.MemoryUsageBytes,
		MaxMemoryBytes:     st.MaxMemoryBytes,
		MaxEntries:         st.MaxEntries,
		Hits:               st.Counters.Hits,
		Misses:             st.Counters.Misses,
		Evictions:          st.Counters.Evictions,
		ExpiredReads:       st.Counters.ExpiredReads,
		Fetches:            st.Counters.Fetches,
		SharedFetches:      st.Counters.SharedFetches,
	}
}
