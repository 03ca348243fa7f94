package filter

import (
	"net/http"
	"strconv"
	"strings"
)

// Sort keys accepted by the engine. Popular is the storefront default.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortRating    = "rating"
	SortReview    = "review"
	SortPopular   = "popular"
)

// Criteria describes one filtered view of the catalog. Set-valued fields
// are OR'd within themselves and AND'd across fields; an empty set places
// no constraint on that dimension.
type Criteria struct {
	Categories []string `json:"categories,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	Sizes      []string `json:"sizes,omitempty"`
	Colors     []string `json:"colors,omitempty"`

	// PriceMin and PriceMax are inclusive bounds on the list price. A range
	// with min > max is applied literally and yields an empty result.
	PriceMin *int64 `json:"price_min,omitempty"`
	PriceMax *int64 `json:"price_max,omitempty"`

	// Ratings are minimum thresholds; a product passes when its rating
	// meets any one of them.
	Ratings []float64 `json:"ratings,omitempty"`

	Search string `json:"search,omitempty"`
	SortBy string `json:"sort_by,omitempty"`

	InStock bool `json:"in_stock,omitempty"`
	OnSale  bool `json:"on_sale,omitempty"`
	IsNew   bool `json:"is_new,omitempty"`
	IsBest  bool `json:"is_best,omitempty"`

	// IncludeInactive disables the active-only stage. Only the admin list
	// sets it.
	IncludeInactive bool `json:"include_inactive,omitempty"`
}

// categoryCodes maps the storefront's localized category labels to the
// internal category vocabulary. Unrecognized labels pass through unchanged
// and are treated as already-internal codes.
var categoryCodes = map[string]string{
	"상의":   "top",
	"하의":   "bottom",
	"아우터":  "outer",
	"드레스":  "dress",
	"신발":   "shoes",
	"가방":   "bag",
	"액세서리": "accessory",
	"언더웨어": "underwear",
}

// NormalizeCategory translates a localized category label to its internal
// code.
func NormalizeCategory(label string) string {
	if code, ok := categoryCodes[label]; ok {
		return code
	}
	return label
}

// ParseCriteria decodes filter criteria from the request query string.
// Multi-valued dimensions accept repeated params and comma-separated lists.
func ParseCriteria(r *http.Request) Criteria {
	q := r.URL.Query()
	c := Criteria{
		Categories: splitParams(q["category"]),
		Brands:     splitParams(q["brand"]),
		Sizes:      splitParams(q["size"]),
		Colors:     splitParams(q["color"]),
		Search:     strings.TrimSpace(q.Get("search")),
		SortBy:     q.Get("sort"),
	}

	if v := q.Get("price_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.PriceMin = &n
		}
	}
	if v := q.Get("price_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.PriceMax = &n
		}
	}
	for _, raw := range splitParams(q["rating"]) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Ratings = append(c.Ratings, f)
		}
	}

	c.InStock = boolParam(q.Get("in_stock"))
	c.OnSale = boolParam(q.Get("on_sale"))
	c.IsNew = boolParam(q.Get("is_new"))
	c.IsBest = boolParam(q.Get("is_best"))
	c.IncludeInactive = boolParam(q.Get("include_inactive"))

	return c
}

func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
