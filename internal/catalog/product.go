package catalog

import (
	"math"
	"time"

	"github.com/raincoat98/lumina/pkg/errors"
)

// Badge labels, in display precedence order.
const (
	BadgeLimited = "LIMITED"
	BadgeHot     = "HOT"
	BadgeNew     = "NEW"
	BadgeBest    = "BEST"
)

// Product is a catalog entry with per-variant (color x size) inventory.
// Prices are integer currency units with no fractional subunits.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Brand       string `json:"brand,omitempty"`
	Collection  string `json:"collection,omitempty"`

	Price int64 `json:"price"`

	// SalePrice is the actual selling price when discounted. OriginalPrice is
	// the legacy pre-discount reference price. Either one may independently
	// mark the product as on sale.
	SalePrice     *int64 `json:"sale_price,omitempty"`
	OriginalPrice *int64 `json:"original_price,omitempty"`

	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category,omitempty"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`

	Stock int `json:"stock"`

	// SizeStocks tracks stock per size when the breakdown is not split by
	// color. ColorSizeStocks takes precedence when present.
	SizeStocks      map[string]int            `json:"size_stocks,omitempty"`
	ColorSizeStocks map[string]map[string]int `json:"color_size_stocks,omitempty"`

	// ColorSizeAvailability gates purchasability per variant. A missing
	// entry defaults to available.
	ColorSizeAvailability map[string]map[string]bool `json:"color_size_availability,omitempty"`

	IsActive   bool `json:"is_active"`
	IsNew      bool `json:"is_new"`
	IsSale     bool `json:"is_sale"`
	IsBest     bool `json:"is_best"`
	IsFeatured bool `json:"is_featured"`
	IsLimited  bool `json:"is_limited"`
	IsHot      bool `json:"is_hot"`

	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Tags        []string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OnSale reports whether the product is discounted. The explicit flag, a
// sale price, or an original price above the list price each qualify.
func (p *Product) OnSale() bool {
	if p.IsSale {
		return true
	}
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return true
	}
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		return true
	}
	return false
}

// EffectivePrice returns the price a buyer actually pays.
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// DiscountPercent returns the rounded discount percentage against the
// reference price, or 0 when the product is not discounted.
func (p *Product) DiscountPercent() int {
	reference := p.Price
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		reference = *p.OriginalPrice
	}
	effective := p.EffectivePrice()
	if reference <= 0 || effective >= reference {
		return 0
	}
	return int(math.Round(float64(reference-effective) / float64(reference) * 100))
}

// Badge returns the single display badge for the product. Flags are
// independent; precedence is LIMITED > HOT > NEW > BEST, first true wins.
func (p *Product) Badge() string {
	switch {
	case p.IsLimited:
		return BadgeLimited
	case p.IsHot:
		return BadgeHot
	case p.IsNew:
		return BadgeNew
	case p.IsBest:
		return BadgeBest
	default:
		return ""
	}
}

// Clone returns a deep copy of the product so callers can stage edits
// without touching the stored value.
func (p *Product) Clone() *Product {
	c := *p
	if p.SalePrice != nil {
		v := *p.SalePrice
		c.SalePrice = &v
	}
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	c.Images = append([]string(nil), p.Images...)
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Colors = append([]string(nil), p.Colors...)
	c.Tags = append([]string(nil), p.Tags...)
	if p.SizeStocks != nil {
		c.SizeStocks = make(map[string]int, len(p.SizeStocks))
		for k, v := range p.SizeStocks {
			c.SizeStocks[k] = v
		}
	}
	if p.ColorSizeStocks != nil {
		c.ColorSizeStocks = make(map[string]map[string]int, len(p.ColorSizeStocks))
		for color, sizes := range p.ColorSizeStocks {
			m := make(map[string]int, len(sizes))
			for k, v := range sizes {
				m[k] = v
			}
			c.ColorSizeStocks[color] = m
		}
	}
	if p.ColorSizeAvailability != nil {
		c.ColorSizeAvailability = make(map[string]map[string]bool, len(p.ColorSizeAvailability))
		for color, sizes := range p.ColorSizeAvailability {
			m := make(map[string]bool, len(sizes))
			for k, v := range sizes {
				m[k] = v
			}
			c.ColorSizeAvailability[color] = m
		}
	}
	return &c
}

// ValidatePricing enforces the save-time pricing rule: a sale price must be
// strictly below the list price and an original price strictly above it.
// Violations abort the save; values are never clamped.
func (p *Product) ValidatePricing() error {
	if p.Price < 0 {
		return errors.Validation("price must not be negative")
	}
	if p.SalePrice != nil && *p.SalePrice >= p.Price {
		return errors.Validation("sale price must be less than the list price")
	}
	if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
		return errors.Validation("original price must be greater than the list price")
	}
	return nil
}

// Draft is the input for creating a product. The store assigns the ID,
// slug, and timestamps.
type Draft struct {
	Name          string                     `json:"name" validate:"required,min=1,max=200"`
	Description   string                     `json:"description" validate:"max=2000"`
	Brand         string                     `json:"brand,omitempty"`
	Collection    string                     `json:"collection,omitempty"`
	Price         int64                      `json:"price" validate:"min=0"`
	SalePrice     *int64                     `json:"sale_price,omitempty"`
	OriginalPrice *int64                     `json:"original_price,omitempty"`
	Category      string                     `json:"category" validate:"required"`
	SubCategory   string                     `json:"sub_category,omitempty"`
	Images        []string                   `json:"images,omitempty"`
	Sizes         []string                   `json:"sizes,omitempty"`
	Colors        []string                   `json:"colors,omitempty"`
	Stock         int                        `json:"stock" validate:"min=0"`
	SizeStocks    map[string]int             `json:"size_stocks,omitempty"`
	ColorSizeStocks map[string]map[string]int `json:"color_size_stocks,omitempty"`
	ColorSizeAvailability map[string]map[string]bool `json:"color_size_availability,omitempty"`
	IsActive   bool     `json:"is_active"`
	IsNew      bool     `json:"is_new"`
	IsSale     bool     `json:"is_sale"`
	IsBest     bool     `json:"is_best"`
	IsFeatured bool     `json:"is_featured"`
	IsLimited  bool     `json:"is_limited"`
	IsHot      bool     `json:"is_hot"`
	Rating     float64  `json:"rating" validate:"min=0,max=5"`
	ReviewCount int     `json:"review_count" validate:"min=0"`
	Tags       []string `json:"tags,omitempty"`
}

// Patch is a typed partial update. Nil fields are left untouched; the merge
// is shallow and all-or-nothing with respect to validation.
type Patch struct {
	Name          *string                    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string                    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Brand         *string                    `json:"brand,omitempty"`
	Collection    *string                    `json:"collection,omitempty"`
	Price         *int64                     `json:"price,omitempty" validate:"omitempty,min=0"`
	SalePrice     *int64                     `json:"sale_price,omitempty"`
	OriginalPrice *int64                     `json:"original_price,omitempty"`
	Category      *string                    `json:"category,omitempty"`
	SubCategory   *string                    `json:"sub_category,omitempty"`
	Images        []string                   `json:"images,omitempty"`
	Sizes         []string                   `json:"sizes,omitempty"`
	Colors        []string                   `json:"colors,omitempty"`
	SizeStocks    map[string]int             `json:"size_stocks,omitempty"`
	ColorSizeStocks map[string]map[string]int `json:"color_size_stocks,omitempty"`
	ColorSizeAvailability map[string]map[string]bool `json:"color_size_availability,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	IsNew      *bool    `json:"is_new,omitempty"`
	IsSale     *bool    `json:"is_sale,omitempty"`
	IsBest     *bool    `json:"is_best,omitempty"`
	IsFeatured *bool    `json:"is_featured,omitempty"`
	IsLimited  *bool    `json:"is_limited,omitempty"`
	IsHot      *bool    `json:"is_hot,omitempty"`
	Rating     *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	ReviewCount *int    `json:"review_count,omitempty" validate:"omitempty,min=0"`
	Tags       []string `json:"tags,omitempty"`
}

// apply shallow-merges the patch into the product. Nil pointer fields and
// nil slices/maps mean "leave as is"; there is no way to clear an optional
// price through a patch.
func (pt *Patch) apply(p *Product) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Brand != nil {
		p.Brand = *pt.Brand
	}
	if pt.Collection != nil {
		p.Collection = *pt.Collection
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.SalePrice != nil {
		v := *pt.SalePrice
		p.SalePrice = &v
	}
	if pt.OriginalPrice != nil {
		v := *pt.OriginalPrice
		p.OriginalPrice = &v
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.SubCategory != nil {
		p.SubCategory = *pt.SubCategory
	}
	if pt.Images != nil {
		p.Images = append([]string(nil), pt.Images...)
	}
	if pt.Sizes != nil {
		p.Sizes = append([]string(nil), pt.Sizes...)
	}
	if pt.Colors != nil {
		p.Colors = append([]string(nil), pt.Colors...)
	}
	if pt.SizeStocks != nil {
		p.SizeStocks = copyIntMap(pt.SizeStocks)
	}
	if pt.ColorSizeStocks != nil {
		p.ColorSizeStocks = make(map[string]map[string]int, len(pt.ColorSizeStocks))
		for color, sizes := range pt.ColorSizeStocks {
			p.ColorSizeStocks[color] = copyIntMap(sizes)
		}
	}
	if pt.ColorSizeAvailability != nil {
		p.ColorSizeAvailability = make(map[string]map[string]bool, len(pt.ColorSizeAvailability))
		for color, sizes := range pt.ColorSizeAvailability {
			m := make(map[string]bool, len(sizes))
			for k, v := range sizes {
				m[k] = v
			}
			p.ColorSizeAvailability[color] = m
		}
	}
	if pt.IsActive != nil {
		p.IsActive = *pt.IsActive
	}
	if pt.IsNew != nil {
		p.IsNew = *pt.IsNew
	}
	if pt.IsSale != nil {
		p.IsSale = *pt.IsSale
	}
	if pt.IsBest != nil {
		p.IsBest = *pt.IsBest
	}
	if pt.IsFeatured != nil {
		p.IsFeatured = *pt.IsFeatured
	}
	if pt.IsLimited != nil {
		p.IsLimited = *pt.IsLimited
	}
	if pt.IsHot != nil {
		p.IsHot = *pt.IsHot
	}
	if pt.Rating != nil {
		p.Rating = *pt.Rating
	}
	if pt.ReviewCount != nil {
		p.ReviewCount = *pt.ReviewCount
	}
	if pt.Tags != nil {
		p.Tags = append([]string(nil), pt.Tags...)
	}
}

func copyIntMap(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
