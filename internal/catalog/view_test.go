package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func buildProducts(count int) []Product {
	products := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		products = append(products, Product{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("Product %02d", i),
			Price:    decimal.NewFromInt(int64(10 + i)),
			Category: Categories[i%len(Categories)],
			InStock:  true,
		})
	}
	return products
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func sortPtr(v SortKey) *SortKey { return &v }

func TestApplyKeepsPageWhenFiltersUnchanged(t *testing.T) {
	state := ViewState{Query: "shirt", Category: "Clothing", Sort: SortNameAsc, Page: 2}

	next := state.Apply(BrowseRequest{Page: intPtr(3)})
	if next.Page != 3 {
		t.Fatalf("expected page 3 got %d", next.Page)
	}
	if next.Query != "shirt" || next.Category != "Clothing" {
		t.Fatalf("filters changed unexpectedly: %+v", next)
	}
}

func TestApplyQueryChangeResetsPage(t *testing.T) {
	state := ViewState{Category: CategoryAll, Sort: SortNameAsc, Page: 3}

	next := state.Apply(BrowseRequest{Query: strPtr("watch"), Page: intPtr(3)})
	if next.Page != 1 {
		t.Fatalf("expected page reset to 1 got %d", next.Page)
	}
	if next.Query != "watch" {
		t.Fatalf("expected query applied got %q", next.Query)
	}
}

func TestApplyCategoryChangeResetsPageEvenWithRequestedPage(t *testing.T) {
	state := ViewState{Category: CategoryAll, Sort: SortNameAsc, Page: 5}

	next := state.Apply(BrowseRequest{Category: strPtr("Watches"), Page: intPtr(5)})
	if next.Page != 1 {
		t.Fatalf("expected page reset to 1 got %d", next.Page)
	}
}

func TestApplySortChangeResetsPage(t *testing.T) {
	state := ViewState{Category: CategoryAll, Sort: SortNameAsc, Page: 4}

	next := state.Apply(BrowseRequest{Sort: sortPtr(SortPriceDesc)})
	if next.Page != 1 {
		t.Fatalf("expected page reset to 1 got %d", next.Page)
	}
	if next.Sort != SortPriceDesc {
		t.Fatalf("expected sort applied got %s", next.Sort)
	}
}

func TestComputePagePaginatesAtTwelve(t *testing.T) {
	products := buildProducts(30)
	state := DefaultViewState()

	page := ComputePage(products, state)
	if len(page.Items) != PageSize {
		t.Fatalf("expected %d items got %d", PageSize, len(page.Items))
	}
	if page.PageCount != 3 {
		t.Fatalf("expected 3 pages got %d", page.PageCount)
	}
	if page.TotalMatches != 30 {
		t.Fatalf("expected 30 matches got %d", page.TotalMatches)
	}

	state.Page = 3
	last := ComputePage(products, state)
	if len(last.Items) != 6 {
		t.Fatalf("expected 6 items on last page got %d", len(last.Items))
	}
}

func TestComputePageClampsPageBeyondEnd(t *testing.T) {
	products := buildProducts(15)
	state := DefaultViewState()
	state.Page = 9

	page := ComputePage(products, state)
	if page.Page != 2 {
		t.Fatalf("expected clamp to page 2 got %d", page.Page)
	}
	if page.State.Page != 2 {
		t.Fatalf("expected stored state clamped got %d", page.State.Page)
	}
}

func TestComputePageSearchMatchesNameAndDescription(t *testing.T) {
	products := buildProducts(20)
	products[2].Name = "Classic Watch"
	products[7].Name = "Sport Watch Pro"
	products[11].Description = "A watch for every occasion"

	state := DefaultViewState()
	state.Query = "Watch"

	page := ComputePage(products, state)
	if page.TotalMatches != 3 {
		t.Fatalf("expected 3 matches got %d", page.TotalMatches)
	}
}

func TestComputePageEmptyResultOffersReset(t *testing.T) {
	products := buildProducts(10)
	state := DefaultViewState()
	state.Query = "no-such-product"

	page := ComputePage(products, state)
	if page.TotalMatches != 0 {
		t.Fatalf("expected no matches got %d", page.TotalMatches)
	}
	if !page.CanResetFilters {
		t.Fatal("expected reset offer on filtered empty result")
	}

	unfiltered := ComputePage(nil, DefaultViewState())
	if unfiltered.CanResetFilters {
		t.Fatal("expected no reset offer when no filters applied")
	}
}

func TestComputePageSortsByPrice(t *testing.T) {
	products := buildProducts(5)
	state := DefaultViewState()
	state.Sort = SortPriceDesc

	page := ComputePage(products, state)
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Price.LessThan(page.Items[i].Price) {
			t.Fatalf("items not sorted descending at index %d", i)
		}
	}

	state.Sort = SortPriceAsc
	page = ComputePage(products, state)
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Price.GreaterThan(page.Items[i].Price) {
			t.Fatalf("items not sorted ascending at index %d", i)
		}
	}
}

func TestParseCategoryNormalizes(t *testing.T) {
	category, err := ParseCategory("watches")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category != "Watches" {
		t.Fatalf("expected canonical casing got %q", category)
	}

	if _, err := ParseCategory("furniture"); err == nil {
		t.Fatal("expected error for unknown category")
	}

	category, err = ParseCategory("")
	if err != nil || category != CategoryAll {
		t.Fatalf("expected empty to mean all, got %q err %v", category, err)
	}
}

func TestParseSortKeyDefaultsToName(t *testing.T) {
	key, err := ParseSortKey("")
	if err != nil || key != SortNameAsc {
		t.Fatalf("expected default name_asc got %q err %v", key, err)
	}
	if _, err := ParseSortKey("rating_desc"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}
