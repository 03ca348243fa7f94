package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func variantProduct() *Product {
	return &Product{
		Sizes:  []string{"S", "M", "XL"},
		Colors: []string{"Black", "White"},
		ColorSizeStocks: map[string]map[string]int{
			"Black": {"S": 2, "M": 4, "XL": 5},
			"White": {"S": 1, "M": 3, "XL": 0},
		},
		ColorSizeAvailability: map[string]map[string]bool{
			"Black": {"XL": false},
		},
	}
}

func TestVariantStock_AvailabilityGateWins(t *testing.T) {
	p := variantProduct()
	// Raw stock is 5 but the variant is switched off.
	assert.Equal(t, 0, p.VariantStock("Black", "XL"))
	assert.Equal(t, 5, p.ColorSizeStocks["Black"]["XL"])
}

func TestVariantStock_ColorSizeBreakdown(t *testing.T) {
	p := variantProduct()
	assert.Equal(t, 4, p.VariantStock("Black", "M"))
	assert.Equal(t, 0, p.VariantStock("White", "XL"))
}

func TestVariantStock_SizeStocksFallback(t *testing.T) {
	p := &Product{
		Sizes:      []string{"250", "260"},
		Colors:     []string{"White"},
		SizeStocks: map[string]int{"250": 6, "260": 11},
	}
	assert.Equal(t, 6, p.VariantStock("White", "250"))
}

func TestVariantStock_EvenSplitFallback(t *testing.T) {
	p := &Product{
		Sizes:  []string{"S", "M", "L"},
		Colors: []string{"Black"},
		Stock:  10,
	}
	// round(10/3) = 3; the parts need not re-sum to the whole.
	assert.Equal(t, 3, p.VariantStock("Black", "M"))
}

func TestVariantStock_UndeclaredSizeIsZero(t *testing.T) {
	p := variantProduct()
	assert.Equal(t, 0, p.VariantStock("Black", "XXL"))
}

func TestVariantAvailable(t *testing.T) {
	p := variantProduct()
	assert.False(t, p.VariantAvailable("Black", "XL"))
	assert.True(t, p.VariantAvailable("Black", "M"))
	// Missing entry defaults to available.
	assert.True(t, p.VariantAvailable("White", "S"))
	// Undeclared color or size is never available.
	assert.False(t, p.VariantAvailable("Red", "M"))
	assert.False(t, p.VariantAvailable("Black", "XXL"))
}

func TestReconcileVariants_PrunesRemovedLabels(t *testing.T) {
	p := variantProduct()
	p.SizeStocks = map[string]int{"S": 1, "XL": 2}
	p.Sizes = []string{"S", "M"}
	p.Colors = []string{"Black"}

	p.reconcileVariants()

	assert.NotContains(t, p.ColorSizeStocks, "White")
	assert.NotContains(t, p.ColorSizeStocks["Black"], "XL")
	assert.NotContains(t, p.ColorSizeAvailability["Black"], "XL")
	assert.NotContains(t, p.SizeStocks, "XL")
}

func TestReconcileVariants_InitializesNewColor(t *testing.T) {
	p := variantProduct()
	p.Colors = append(p.Colors, "Navy")

	p.reconcileVariants()

	assert.Equal(t, map[string]int{"S": 0, "M": 0, "XL": 0}, p.ColorSizeStocks["Navy"])
	assert.Equal(t, map[string]bool{"S": true, "M": true, "XL": true}, p.ColorSizeAvailability["Navy"])
}

func TestReconcileVariants_StaleDataDoesNotResurface(t *testing.T) {
	p := variantProduct()

	// Remove White, then add it back.
	p.Colors = []string{"Black"}
	p.reconcileVariants()
	p.Colors = []string{"Black", "White"}
	p.reconcileVariants()

	assert.Equal(t, 0, p.ColorSizeStocks["White"]["M"])
	assert.True(t, p.ColorSizeAvailability["White"]["M"])
}

func TestRecomputeStock_SumInvariant(t *testing.T) {
	p := variantProduct()
	p.RecomputeStock()
	// Availability gates purchasability, never the bookkeeping total.
	assert.Equal(t, 15, p.Stock)

	sum := 0
	for _, sizes := range p.ColorSizeStocks {
		for _, n := range sizes {
			sum += n
		}
	}
	assert.Equal(t, sum, p.Stock)
}

func TestRecomputeStock_SizeStocksOnly(t *testing.T) {
	p := &Product{
		Sizes:      []string{"250", "260"},
		SizeStocks: map[string]int{"250": 6, "260": 11},
		Stock:      1,
	}
	p.RecomputeStock()
	assert.Equal(t, 17, p.Stock)
}
