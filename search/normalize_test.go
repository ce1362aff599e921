package search

import (
	"testing"

	"github.com/sanshu/iconcache/types"
)

func rawIcons(ids ...uint64) []types.RawIcon {
	out := make([]types.RawIcon, len(ids))
	for i, id := range ids {
		out[i] = types.RawIcon{ID: id, Name: "n"}
	}
	return out
}

func TestMetadataNameFallback(t *testing.T) {
	m := Metadata(types.RawIcon{ID: 77, FontClass: "gear"})
	if m.Name != "icon_77" || m.FontClass != "gear" {
		t.Fatalf("unexpected metadata %+v", m)
	}
}

func TestPageKeepsOrderAndDropsDuplicates(t *testing.T) {
	p := types.SearchParams{Page: 1, PageSize: 10}
	page := Page(p, types.RawSearchResult{Icons: rawIcons(5, 3, 5, 9), Count: 4})

	var got []uint64
	for _, ic := range page.Icons {
		got = append(got, ic.ID)
	}
	if len(got) != 3 || got[0] != 5 || got[1] != 3 || got[2] != 9 {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestPageSlicesUnpagedProvider(t *testing.T) {
	ids := make([]uint64, 25)
	for i := range ids {
		ids[i] = uint64(i + 1)
	}
	raw := types.RawSearchResult{Icons: rawIcons(ids...), Count: 0}

	page := Page(types.SearchParams{Page: 2, PageSize: 10}, raw)
	if len(page.Icons) != 10 || page.Icons[0].ID != 11 {
		t.Fatalf("unexpected slice %+v", page.Icons)
	}
	if page.Total != 25 || !page.HasMore {
		t.Fatalf("unexpected totals %+v", page)
	}

	last := Page(types.SearchParams{Page: 3, PageSize: 10}, raw)
	if len(last.Icons) != 5 || last.HasMore {
		t.Fatalf("unexpected last page %+v", last)
	}

	beyond := Page(types.SearchParams{Page: 9, PageSize: 10}, raw)
	if len(beyond.Icons) != 0 || beyond.HasMore {
		t.Fatalf("unexpected page past the end %+v", beyond)
	}
}

func TestPageWithoutCountKeepsPaging(t *testing.T) {
	// provider omitted count but returned a full page 2
	page := Page(types.SearchParams{Page: 2, PageSize: 3}, types.RawSearchResult{Icons: rawIcons(4, 5, 6)})
	if page.Total < 6 || !page.HasMore {
		t.Fatalf("full page without count must report more, got %+v", page)
	}

	first := Page(types.SearchParams{Page: 1, PageSize: 50}, types.RawSearchResult{Icons: rawIcons(seq(1, 50)...)})
	if !first.HasMore || first.Total <= 50 {
		t.Fatalf("full first page without count ended paging: total=%d hasMore=%v", first.Total, first.HasMore)
	}

	short := Page(types.SearchParams{Page: 2, PageSize: 3}, types.RawSearchResult{Icons: rawIcons(4, 5)})
	if short.Total != 5 || short.HasMore {
		t.Fatalf("short page without count is the last one, got %+v", short)
	}
}

func TestPageUnpagedResultThatFitsOnePage(t *testing.T) {
	raw := types.RawSearchResult{Icons: rawIcons(seq(1, 30)...), Count: 30}

	first := Page(types.SearchParams{Page: 1, PageSize: 50}, raw)
	if len(first.Icons) != 30 || first.Total != 30 || first.HasMore {
		t.Fatalf("unexpected page 1 %+v", first)
	}

	second := Page(types.SearchParams{Page: 2, PageSize: 50}, raw)
	if len(second.Icons) != 0 || second.Total != 30 || second.HasMore {
		t.Fatalf("page 2 must be empty with total 30, got total=%d icons=%d hasMore=%v",
			second.Total, len(second.Icons), second.HasMore)
	}

	// same shape with a smaller page size slices by offset
	mid := Page(types.SearchParams{Page: 2, PageSize: 20}, raw)
	if len(mid.Icons) != 10 || mid.Icons[0].ID != 21 || mid.HasMore {
		t.Fatalf("unexpected slice %+v", mid)
	}
}

func TestPageNeverExceedsProviderCount(t *testing.T) {
	page := Page(types.SearchParams{Page: 3, PageSize: 10}, types.RawSearchResult{Icons: rawIcons(seq(21, 30)...), Count: 25})
	if page.Total != 25 {
		t.Fatalf("total must stay at the provider count, got %d", page.Total)
	}
}

func seq(from, to uint64) []uint64 {
	out := make([]uint64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestCanonicalDefaults(t *testing.T) {
	p, err := DefaultLimits.Canonical(types.SearchParams{Query: " Icon "})
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	want := types.SearchParams{
		Query: "icon", Style: types.StyleAll, Fills: types.FillsAll,
		SortType: types.SortRelate, Page: 1, PageSize: 50,
	}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}
}
