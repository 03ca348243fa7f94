package catalog

import "context"

func int64ptr(v int64) *int64 { return &v }

// Seed loads the demo collection into the store. It stands in for the
// external data-ingestion edge; drafts arrive already shaped to the product
// schema. Seeding an already-populated store reports name conflicts for the
// duplicates and keeps going.
func Seed(ctx context.Context, s *Store) error {
	var firstErr error
	for _, draft := range seedDrafts() {
		if _, err := s.Add(ctx, draft); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func seedDrafts() []Draft {
	return []Draft{
		{
			Name:          "Essential Cotton Tee",
			Description:   "Heavyweight combed cotton tee with a relaxed drop shoulder.",
			Brand:         "LUMINA",
			Collection:    "Essentials",
			Price:         29000,
			Category:      "top",
			SubCategory:   "tshirt",
			Images:        []string{"/images/products/essential-cotton-tee-1.jpg", "/images/products/essential-cotton-tee-2.jpg"},
			Sizes:         []string{"S", "M", "L", "XL"},
			Colors:        []string{"White", "Black", "Navy"},
			ColorSizeStocks: map[string]map[string]int{
				"White": {"S": 8, "M": 12, "L": 10, "XL": 4},
				"Black": {"S": 6, "M": 15, "L": 9, "XL": 5},
				"Navy":  {"S": 3, "M": 7, "L": 6, "XL": 2},
			},
			IsActive:    true,
			IsBest:      true,
			Rating:      4.6,
			ReviewCount: 214,
			Tags:        []string{"basic", "cotton", "everyday"},
		},
		{
			Name:          "Slim Tapered Chino",
			Description:   "Stretch twill chino tapered below the knee.",
			Brand:         "LUMINA",
			Collection:    "Essentials",
			Price:         59000,
			SalePrice:     int64ptr(45000),
			Category:      "bottom",
			SubCategory:   "pants",
			Images:        []string{"/images/products/slim-tapered-chino-1.jpg"},
			Sizes:         []string{"28", "30", "32", "34"},
			Colors:        []string{"Beige", "Charcoal"},
			ColorSizeStocks: map[string]map[string]int{
				"Beige":    {"28": 4, "30": 9, "32": 7, "34": 3},
				"Charcoal": {"28": 2, "30": 6, "32": 8, "34": 4},
			},
			IsActive:    true,
			IsSale:      true,
			Rating:      4.3,
			ReviewCount: 98,
			Tags:        []string{"chino", "stretch"},
		},
		{
			Name:          "Wool Blend Overcoat",
			Description:   "Double-faced wool blend coat with horn buttons, fully lined.",
			Brand:         "Atelier North",
			Collection:    "Winter",
			Price:         189000,
			OriginalPrice: int64ptr(239000),
			Category:      "outer",
			SubCategory:   "coat",
			Images:        []string{"/images/products/wool-blend-overcoat-1.jpg", "/images/products/wool-blend-overcoat-2.jpg"},
			Sizes:         []string{"M", "L", "XL"},
			Colors:        []string{"Camel", "Black"},
			ColorSizeStocks: map[string]map[string]int{
				"Camel": {"M": 3, "L": 5, "XL": 2},
				"Black": {"M": 4, "L": 6, "XL": 1},
			},
			ColorSizeAvailability: map[string]map[string]bool{
				"Black": {"XL": false},
			},
			IsActive:    true,
			IsHot:       true,
			Rating:      4.8,
			ReviewCount: 156,
			Tags:        []string{"wool", "winter", "outerwear"},
		},
		{
			Name:        "Pleated Midi Dress",
			Description: "Accordion pleated midi with an elastic waistband.",
			Brand:       "Mirelle",
			Collection:  "Spring",
			Price:       79000,
			Category:    "dress",
			Images:      []string{"/images/products/pleated-midi-dress-1.jpg"},
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Ivory", "Dusty Rose"},
			ColorSizeStocks: map[string]map[string]int{
				"Ivory":      {"S": 5, "M": 8, "L": 4},
				"Dusty Rose": {"S": 2, "M": 6, "L": 3},
			},
			IsActive:    true,
			IsNew:       true,
			Rating:      4.5,
			ReviewCount: 67,
			Tags:        []string{"pleated", "midi", "spring"},
		},
		{
			Name:        "Court Leather Sneaker",
			Description: "Full-grain leather court sneaker on a cupsole.",
			Brand:       "Stride Lab",
			Price:       99000,
			SalePrice:   int64ptr(79000),
			Category:    "shoes",
			SubCategory: "sneakers",
			Images:      []string{"/images/products/court-leather-sneaker-1.jpg"},
			Sizes:       []string{"250", "260", "270", "280"},
			Colors:      []string{"White"},
			SizeStocks:  map[string]int{"250": 6, "260": 11, "270": 9, "280": 4},
			IsActive:    true,
			IsBest:      true,
			IsSale:      true,
			Rating:      4.7,
			ReviewCount: 342,
			Tags:        []string{"leather", "sneakers"},
		},
		{
			Name:        "Canvas Tote Bag",
			Description: "Washed canvas tote with an interior zip pocket.",
			Brand:       "LUMINA",
			Price:       39000,
			Category:    "bag",
			Images:      []string{"/images/products/canvas-tote-bag-1.jpg"},
			Sizes:       []string{"One Size"},
			Colors:      []string{"Natural", "Olive"},
			ColorSizeStocks: map[string]map[string]int{
				"Natural": {"One Size": 18},
				"Olive":   {"One Size": 12},
			},
			IsActive:    true,
			Rating:      4.2,
			ReviewCount: 45,
			Tags:        []string{"canvas", "tote"},
		},
		{
			Name:        "Sterling Chain Necklace",
			Description: "925 sterling silver curb chain, 45cm.",
			Brand:       "Ore & Oak",
			Price:       65000,
			Category:    "accessory",
			SubCategory: "jewelry",
			Images:      []string{"/images/products/sterling-chain-necklace-1.jpg"},
			Sizes:       []string{"One Size"},
			Colors:      []string{"Silver"},
			SizeStocks:  map[string]int{"One Size": 7},
			IsActive:    true,
			IsLimited:   true,
			IsNew:       true,
			Rating:      4.9,
			ReviewCount: 28,
			Tags:        []string{"silver", "jewelry", "limited"},
		},
		{
			Name:        "Ribbed Lounge Set",
			Description: "Brushed ribbed knit top and shorts set.",
			Brand:       "Mirelle",
			Price:       49000,
			Category:    "underwear",
			SubCategory: "lounge",
			Images:      []string{"/images/products/ribbed-lounge-set-1.jpg"},
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Oat", "Charcoal"},
			ColorSizeStocks: map[string]map[string]int{
				"Oat":      {"S": 4, "M": 7, "L": 5},
				"Charcoal": {"S": 3, "M": 5, "L": 2},
			},
			IsActive:    true,
			Rating:      4.4,
			ReviewCount: 83,
			Tags:        []string{"lounge", "knit"},
		},
		{
			Name:          "Denim Trucker Jacket",
			Description:   "Rigid 13oz denim trucker, cut straight through the body.",
			Brand:         "Atelier North",
			Price:         89000,
			OriginalPrice: int64ptr(109000),
			Category:      "outer",
			SubCategory:   "jacket",
			Images:        []string{"/images/products/denim-trucker-jacket-1.jpg"},
			Sizes:         []string{"S", "M", "L", "XL"},
			Colors:        []string{"Indigo"},
			ColorSizeStocks: map[string]map[string]int{
				"Indigo": {"S": 3, "M": 8, "L": 7, "XL": 2},
			},
			IsActive:    true,
			IsFeatured:  true,
			Rating:      4.6,
			ReviewCount: 121,
			Tags:        []string{"denim", "jacket"},
		},
		{
			Name:        "Archive Logo Hoodie",
			Description: "Discontinued archive print on a midweight fleece hoodie.",
			Brand:       "LUMINA",
			Price:       69000,
			Category:    "top",
			SubCategory: "hoodie",
			Images:      []string{"/images/products/archive-logo-hoodie-1.jpg"},
			Sizes:       []string{"M", "L"},
			Colors:      []string{"Grey"},
			ColorSizeStocks: map[string]map[string]int{
				"Grey": {"M": 0, "L": 0},
			},
			IsActive:    false,
			Rating:      4.1,
			ReviewCount: 54,
			Tags:        []string{"hoodie", "archive"},
		},
	}
}
