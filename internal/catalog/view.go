package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// PageSize is the fixed number of products per shop page.
const PageSize = 12

type SortKey string

const (
	SortNameAsc   SortKey = "name_asc"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

var validSortKeys = []SortKey{SortNameAsc, SortPriceAsc, SortPriceDesc}

// ParseSortKey normalizes a sort parameter. Empty means name ascending.
func ParseSortKey(value string) (SortKey, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return SortNameAsc, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// ViewState is a visitor's current shop view: filters, sort, and page. It is
// transient, recreated per visitor, and carries no invariant beyond matching
// the last successful read.
type ViewState struct {
	Query    string  `json:"query"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
	Page     int     `json:"page"`
}

func DefaultViewState() ViewState {
	return ViewState{
		Category: CategoryAll,
		Sort:     SortNameAsc,
		Page:     1,
	}
}

// BrowseRequest carries the parameters present on a shop request. Nil fields
// were not sent and leave the stored state untouched.
type BrowseRequest struct {
	Query    *string
	Category *string
	Sort     *SortKey
	Page     *int
}

// Apply folds a request into the prior view state. Changing the query,
// category, or sort resets the page to 1 no matter what page the request
// asked for.
func (s ViewState) Apply(req BrowseRequest) ViewState {
	next := s
	filterChanged := false

	if req.Query != nil && *req.Query != s.Query {
		next.Query = *req.Query
		filterChanged = true
	}
	if req.Category != nil && *req.Category != s.Category {
		next.Category = *req.Category
		filterChanged = true
	}
	if req.Sort != nil && *req.Sort != s.Sort {
		next.Sort = *req.Sort
		filterChanged = true
	}

	if filterChanged {
		next.Page = 1
		return next
	}
	if req.Page != nil {
		next.Page = *req.Page
	}
	return next
}

// ShopPage is one rendered page of the filtered catalog.
type ShopPage struct {
	Items        []Product `json:"items"`
	Page         int       `json:"page"`
	PageCount    int       `json:"page_count"`
	TotalMatches int       `json:"total_matches"`
	State        ViewState `json:"state"`

	// CanResetFilters flags the empty-result recovery action: clear the
	// query and category back to defaults.
	CanResetFilters bool `json:"can_reset_filters"`
}

// ComputePage recomputes the filtered, sorted, paginated view. It is pure and
// total: every filter combination yields a valid page, and an empty result is
// a valid terminal state.
func ComputePage(products []Product, state ViewState) ShopPage {
	filtered := filterProducts(products, state)
	sortProducts(filtered, state.Sort)

	total := len(filtered)
	pageCount := (total + PageSize - 1) / PageSize

	page := state.Page
	if page < 1 {
		page = 1
	}
	if pageCount > 0 && page > pageCount {
		page = pageCount
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	state.Page = page
	return ShopPage{
		Items:           filtered[start:end],
		Page:            page,
		PageCount:       pageCount,
		TotalMatches:    total,
		State:           state,
		CanResetFilters: total == 0 && (state.Query != "" || state.Category != CategoryAll),
	}
}

func filterProducts(products []Product, state ViewState) []Product {
	query := strings.ToLower(strings.TrimSpace(state.Query))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if state.Category != CategoryAll && !strings.EqualFold(p.Category, state.Category) {
			continue
		}
		if query != "" {
			name := strings.ToLower(p.Name)
			description := strings.ToLower(p.Description)
			if !strings.Contains(name, query) && !strings.Contains(description, query) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders deterministically: ties fall back to name, then id.
func sortProducts(products []Product, key SortKey) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch key {
		case SortPriceAsc:
			if cmp := a.Price.Cmp(b.Price); cmp != 0 {
				return cmp < 0
			}
		case SortPriceDesc:
			if cmp := a.Price.Cmp(b.Price); cmp != 0 {
				return cmp > 0
			}
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.ID.String() < b.ID.String()
	})
}
