// Package key builds the cache keys for search pages and icon content.
//
// Two requests that mean the same thing must map to the same key, so every
// field is canonicalised first; see NormalizeQuery and Canonical.
package key

import (
	"strconv"
	"strings"

	"github.com/sanshu/iconcache/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	searchPrefix  = "search:"
	contentPrefix = "content:"
)

var lower = cases.Lower(language.Und)

// NormalizeQuery applies NFC, collapses whitespace runs to one space, trims
// and lower-cases. Full-width CJK spaces count as whitespace.
func NormalizeQuery(q string) string {
	q = norm.NFC.String(q)
	q = strings.Join(strings.Fields(q), " ")
	return lower.String(q)
}

// Search returns the key for an already canonical parameter set.
// The query is quoted so no query text can forge another field.
func Search(p types.SearchParams) string {
	var b strings.Builder
	b.WriteString(searchPrefix)
	b.WriteString(strconv.Quote(p.Query))
	b.WriteString("|style=")
	b.WriteString(string(p.Style))
	b.WriteString("|fills=")
	b.WriteString(string(p.Fills))
	b.WriteString("|sort=")
	b.WriteString(string(p.SortType))
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(p.Page))
	b.WriteString("|size=")
	b.WriteString(strconv.Itoa(p.PageSize))
	if p.FromCollection {
		b.WriteString("|collection")
	}
	return b.String()
}

// Content returns the key for one icon representation. SVG ignores size.
func Content(id uint64, format types.Format, size int) string {
	if format == types.FormatSVG {
		size = 0
	}
	return contentPrefix + strconv.FormatUint(id, 10) + ":" + string(format) + ":" + strconv.Itoa(size)
}

// IsSearch reports whether k is in the search namespace.
func IsSearch(k string) bool { return strings.HasPrefix(k, searchPrefix) }

// IsContent reports whether k is in the content namespace.
func IsContent(k string) bool { return strings.HasPrefix(k, contentPrefix) }
