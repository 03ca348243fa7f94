package filter

import (
	"sort"
	"strings"

	"github.com/raincoat98/lumina/internal/catalog"
)

// Result is one page of a filtered view.
type Result struct {
	Items      []*catalog.Product `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalPages int                `json:"total_pages"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

// Apply runs the fixed filter pipeline over a catalog snapshot. It is a
// pure function of its inputs: safe to recompute on every request, never
// mutates the snapshot, deterministic for a given input order.
//
// Stage order: active-only, search, category, brand, price range, size,
// color, rating, boolean toggles, then sort.
func Apply(products []*catalog.Product, c Criteria) []*catalog.Product {
	out := make([]*catalog.Product, 0, len(products))

	categories := make([]string, 0, len(c.Categories))
	for _, label := range c.Categories {
		categories = append(categories, NormalizeCategory(label))
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))

	for _, p := range products {
		if !c.IncludeInactive && !p.IsActive {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if len(categories) > 0 && !containsString(categories, p.Category) {
			continue
		}
		if len(c.Brands) > 0 && !containsString(c.Brands, p.Brand) {
			continue
		}
		if c.PriceMin != nil && p.Price < *c.PriceMin {
			continue
		}
		if c.PriceMax != nil && p.Price > *c.PriceMax {
			continue
		}
		if len(c.Sizes) > 0 && !intersects(c.Sizes, p.Sizes) {
			continue
		}
		if len(c.Colors) > 0 && !intersects(c.Colors, p.Colors) {
			continue
		}
		if len(c.Ratings) > 0 && !meetsAnyRating(p.Rating, c.Ratings) {
			continue
		}
		if c.InStock && p.Stock <= 0 {
			continue
		}
		if c.OnSale && !p.OnSale() {
			continue
		}
		if c.IsNew && !p.IsNew {
			continue
		}
		if c.IsBest && !p.IsBest {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.SortBy)
	return out
}

// Page slices a 1-based page out of the filtered list. A page of zero, a
// negative page, or a page past the end yields an empty page rather than an
// error.
func Page(items []*catalog.Product, page, perPage int) Result {
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	res := Result{
		Items:      []*catalog.Product{},
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}
	if page < 1 || page > totalPages {
		return res
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	res.Items = items[start:end]
	return res
}

func matchesSearch(p *catalog.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intersects(requested, declared []string) bool {
	for _, r := range requested {
		for _, d := range declared {
			if r == d {
				return true
			}
		}
	}
	return false
}

func meetsAnyRating(rating float64, thresholds []float64) bool {
	for _, t := range thresholds {
		if rating >= t {
			return true
		}
	}
	return false
}

// sortProducts orders the working set by the requested key. All sorts are
// stable so products that compare equal keep their catalog order; newest
// and popular rely on that for their flag-first semantics.
func sortProducts(items []*catalog.Product, key string) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].IsNew && !items[j].IsNew
		})
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case SortReview:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ReviewCount > items[j].ReviewCount
		})
	default: // popular
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].IsBest && !items[j].IsBest
		})
	}
}
