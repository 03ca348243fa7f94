package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raincoat98/lumina/internal/event"
	"github.com/raincoat98/lumina/pkg/errors"
	"github.com/raincoat98/lumina/pkg/slug"
)

// Stats holds the aggregate figures shown on the admin dashboard.
type Stats struct {
	TotalProducts    int   `json:"total_products"`
	ActiveProducts   int   `json:"active_products"`
	FeaturedProducts int   `json:"featured_products"`
	TotalStock       int   `json:"total_stock"`
	InventoryValue   int64 `json:"inventory_value"`
}

// Store is the authoritative in-memory product catalog. A single mutex
// guards all mutations; reads hand out deep copies so callers can never
// alias stored state.
type Store struct {
	mu       sync.RWMutex
	products map[string]*Product
	order    []string

	events *event.Producer
	logger *slog.Logger
}

// NewStore creates an empty catalog. The event producer is optional; with
// nil, mutations simply skip publishing.
func NewStore(logger *slog.Logger, events *event.Producer) *Store {
	return &Store{
		products: make(map[string]*Product),
		order:    make([]string, 0),
		events:   events,
		logger:   logger,
	}
}

// Add creates a product from a draft, assigning an ID, slug, and timestamps.
// A draft whose name matches an existing product is rejected as a conflict;
// this is a simple de-duplication guard, not a uniqueness constraint.
func (s *Store) Add(ctx context.Context, draft Draft) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:                    uuid.New().String(),
		Name:                  draft.Name,
		Slug:                  makeSlug(draft.Name),
		Description:           draft.Description,
		Brand:                 draft.Brand,
		Collection:            draft.Collection,
		Price:                 draft.Price,
		SalePrice:             draft.SalePrice,
		OriginalPrice:         draft.OriginalPrice,
		Category:              draft.Category,
		SubCategory:           draft.SubCategory,
		Images:                draft.Images,
		Sizes:                 draft.Sizes,
		Colors:                draft.Colors,
		Stock:                 draft.Stock,
		SizeStocks:            draft.SizeStocks,
		ColorSizeStocks:       draft.ColorSizeStocks,
		ColorSizeAvailability: draft.ColorSizeAvailability,
		IsActive:              draft.IsActive,
		IsNew:                 draft.IsNew,
		IsSale:                draft.IsSale,
		IsBest:                draft.IsBest,
		IsFeatured:            draft.IsFeatured,
		IsLimited:             draft.IsLimited,
		IsHot:                 draft.IsHot,
		Rating:                draft.Rating,
		ReviewCount:           draft.ReviewCount,
		Tags:                  draft.Tags,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := p.ValidatePricing(); err != nil {
		return nil, err
	}
	p.reconcileVariants()
	p.RecomputeStock()

	s.mu.Lock()
	for _, id := range s.order {
		if strings.EqualFold(s.products[id].Name, p.Name) {
			s.mu.Unlock()
			return nil, errors.AlreadyExists("product", "name", p.Name)
		}
	}
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	result := p.Clone()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID),
		slog.String("name", p.Name),
	)
	if s.events != nil {
		s.events.ProductCreated(ctx, productData(result))
	}
	return result, nil
}

// Update shallow-merges a patch into the product, revalidates pricing,
// reconciles the variant breakdown against the new size and color sets, and
// refreshes UpdatedAt. The merge is all-or-nothing: a validation failure
// leaves the stored product untouched, pending variant edits included.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (*Product, error) {
	s.mu.Lock()
	current, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return nil, errors.NotFound("product", id)
	}

	staged := current.Clone()
	patch.apply(staged)
	if err := staged.ValidatePricing(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	staged.reconcileVariants()
	staged.RecomputeStock()
	staged.UpdatedAt = time.Now().UTC()

	s.products[id] = staged
	result := staged.Clone()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id))
	if s.events != nil {
		s.events.ProductUpdated(ctx, productData(result))
	}
	return result, nil
}

// Delete removes a product. Cart and wishlist entries referencing it are
// deliberately left alone; readers tolerate the orphaned reference.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return errors.NotFound("product", id)
	}
	data := productData(p)
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	if s.events != nil {
		s.events.ProductDeleted(ctx, data)
	}
	return nil
}

// Get returns a copy of the product or a not-found error.
func (s *Store) Get(id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, errors.NotFound("product", id)
	}
	return p.Clone(), nil
}

// List returns a snapshot of the catalog in insertion order. Inactive
// products are included only on request; the admin list is the one caller
// that asks for them.
func (s *Store) List(includeInactive bool) []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if !includeInactive && !p.IsActive {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Stats computes the admin dashboard aggregates. Inventory value uses the
// effective selling price of each product.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	st.TotalProducts = len(s.order)
	for _, p := range s.products {
		if p.IsActive {
			st.ActiveProducts++
		}
		if p.IsFeatured {
			st.FeaturedProducts++
		}
		st.TotalStock += p.Stock
		st.InventoryValue += p.EffectivePrice() * int64(p.Stock)
	}
	return st
}

func makeSlug(name string) string {
	s := slug.Generate(name)
	if s == "" {
		s = uuid.New().String()
	}
	return s
}

func productData(p *Product) event.ProductData {
	return event.ProductData{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		IsActive: p.IsActive,
	}
}
