package search

import (
	"fmt"
	"strings"

	"github.com/sanshu/iconcache/key"
	"github.com/sanshu/iconcache/types"
)

// Limits bounds what a caller may ask for.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultSort     types.SortType
}

// DefaultLimits mirrors the icon workshop defaults.
var DefaultLimits = Limits{
	DefaultPageSize: 50,
	MaxPageSize:     100,
	DefaultSort:     types.SortRelate,
}

// Canonical validates p and fills omitted fields with their defaults.
// Out-of-range values are rejected, never clamped.
func (l Limits) Canonical(p types.SearchParams) (types.SearchParams, error) {
	p.Query = key.NormalizeQuery(p.Query)
	if p.Query == "" {
		return p, &types.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	switch {
	case p.Page == 0:
		p.Page = 1
	case p.Page < 0:
		return p, &types.ValidationError{Field: "page", Reason: fmt.Sprintf("must be >= 1, got %d", p.Page)}
	}

	switch {
	case p.PageSize == 0:
		p.PageSize = l.DefaultPageSize
	case p.PageSize < 1 || p.PageSize > l.MaxPageSize:
		return p, &types.ValidationError{
			Field:  "page_size",
			Reason: fmt.Sprintf("must be within [1, %d], got %d", l.MaxPageSize, p.PageSize),
		}
	}

	var ok bool
	if p.Style, ok = canonicalStyle(p.Style); !ok {
		return p, &types.ValidationError{Field: "style", Reason: fmt.Sprintf("unknown style %q", p.Style)}
	}
	if p.Fills, ok = canonicalFills(p.Fills); !ok {
		return p, &types.ValidationError{Field: "fills", Reason: fmt.Sprintf("unknown fills %q", p.Fills)}
	}
	if p.SortType, ok = canonicalSort(p.SortType, l.DefaultSort); !ok {
		return p, &types.ValidationError{Field: "sort_type", Reason: fmt.Sprintf("unknown sort %q", p.SortType)}
	}
	return p, nil
}

func canonicalStyle(s types.Style) (types.Style, bool) {
	switch v := types.Style(strings.ToLower(strings.TrimSpace(string(s)))); v {
	case "":
		return types.StyleAll, true
	case types.StyleAll, types.StyleLine, types.StyleFill, types.StyleFlat:
		return v, true
	default:
		return s, false
	}
}

func canonicalFills(f types.Fills) (types.Fills, bool) {
	switch v := types.Fills(strings.ToLower(strings.TrimSpace(string(f)))); v {
	case "":
		return types.FillsAll, true
	case types.FillsAll, types.FillsSingle, types.FillsMulti:
		return v, true
	default:
		return f, false
	}
}

func canonicalSort(s, def types.SortType) (types.SortType, bool) {
	switch v := types.SortType(strings.ToLower(strings.TrimSpace(string(s)))); v {
	case "":
		if def == "" {
			def = types.SortRelate
		}
		return def, true
	case types.SortRelate, types.SortNew, types.SortHot:
		return v, true
	default:
		return s, false
	}
}
