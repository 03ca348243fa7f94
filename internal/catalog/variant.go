package catalog

import "math"

// VariantStock resolves the purchasable stock for a (color, size) variant.
//
// Resolution order: an availability entry that is explicitly false wins and
// yields 0; then the color x size breakdown; then the per-size fallback; and
// finally an even split of the total stock across the declared sizes. The
// even split is rounded and not guaranteed to re-sum to the total.
func (p *Product) VariantStock(color, size string) int {
	if !p.hasSize(size) {
		return 0
	}

	if avail, ok := p.ColorSizeAvailability[color]; ok {
		if enabled, ok := avail[size]; ok && !enabled {
			return 0
		}
	}

	if sizes, ok := p.ColorSizeStocks[color]; ok {
		if stock, ok := sizes[size]; ok {
			return stock
		}
	}

	if stock, ok := p.SizeStocks[size]; ok {
		return stock
	}

	if len(p.Sizes) == 0 {
		return 0
	}
	return int(math.Round(float64(p.Stock) / float64(len(p.Sizes))))
}

// VariantAvailable reports whether a (color, size) variant is purchasable.
// A missing availability entry defaults to true; an undeclared color or
// size is never available.
func (p *Product) VariantAvailable(color, size string) bool {
	if !p.hasColor(color) || !p.hasSize(size) {
		return false
	}
	if avail, ok := p.ColorSizeAvailability[color]; ok {
		if enabled, ok := avail[size]; ok {
			return enabled
		}
	}
	return true
}

func (p *Product) hasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p *Product) hasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// reconcileVariants prunes variant entries for removed sizes and colors and
// initializes entries for newly added colors, so every declared (color, size)
// pair has a deterministic stock and availability value. Stale data must not
// resurface when a label is later re-added with different intent.
func (p *Product) reconcileVariants() {
	sizeSet := make(map[string]struct{}, len(p.Sizes))
	for _, s := range p.Sizes {
		sizeSet[s] = struct{}{}
	}
	colorSet := make(map[string]struct{}, len(p.Colors))
	for _, c := range p.Colors {
		colorSet[c] = struct{}{}
	}

	for size := range p.SizeStocks {
		if _, ok := sizeSet[size]; !ok {
			delete(p.SizeStocks, size)
		}
	}

	for color, sizes := range p.ColorSizeStocks {
		if _, ok := colorSet[color]; !ok {
			delete(p.ColorSizeStocks, color)
			continue
		}
		for size := range sizes {
			if _, ok := sizeSet[size]; !ok {
				delete(sizes, size)
			}
		}
	}

	for color, sizes := range p.ColorSizeAvailability {
		if _, ok := colorSet[color]; !ok {
			delete(p.ColorSizeAvailability, color)
			continue
		}
		for size := range sizes {
			if _, ok := sizeSet[size]; !ok {
				delete(sizes, size)
			}
		}
	}

	// New colors start with zero stock and full availability for every
	// declared size. Only applies when color-level tracking is in use;
	// products tracked purely per size keep their flat breakdown.
	if len(p.ColorSizeStocks) > 0 {
		for _, color := range p.Colors {
			if _, ok := p.ColorSizeStocks[color]; !ok {
				stocks := make(map[string]int, len(p.Sizes))
				for _, size := range p.Sizes {
					stocks[size] = 0
				}
				p.ColorSizeStocks[color] = stocks
			}
		}
		if p.ColorSizeAvailability == nil {
			p.ColorSizeAvailability = make(map[string]map[string]bool, len(p.Colors))
		}
		for _, color := range p.Colors {
			if _, ok := p.ColorSizeAvailability[color]; !ok {
				avail := make(map[string]bool, len(p.Sizes))
				for _, size := range p.Sizes {
					avail[size] = true
				}
				p.ColorSizeAvailability[color] = avail
			}
		}
	}
}

// RecomputeStock rederives the total stock from the variant breakdown.
// The color x size breakdown wins over the per-size one; availability never
// affects the total, it only gates purchasability.
func (p *Product) RecomputeStock() {
	if len(p.ColorSizeStocks) > 0 {
		total := 0
		for _, sizes := range p.ColorSizeStocks {
			for _, stock := range sizes {
				total += stock
			}
		}
		p.Stock = total
		return
	}
	if len(p.SizeStocks) > 0 {
		total := 0
		for _, stock := range p.SizeStocks {
			total += stock
		}
		p.Stock = total
	}
}
