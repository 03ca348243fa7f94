package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/raincoat98/lumina/internal/event"
	"github.com/raincoat98/lumina/pkg/errors"
)

// AddInput carries the product snapshot the handler captured at add time.
type AddInput struct {
	ProductID     string `json:"product_id" validate:"required"`
	Size          string `json:"size" validate:"required"`
	Color         string `json:"color" validate:"required"`
	Name          string `json:"name"`
	Price         int64  `json:"price" validate:"min=0"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
	Image         string `json:"image,omitempty"`
}

// Store holds the carts for every session. The in-memory map is
// authoritative; the optional repository persists snapshots and feeds
// cross-session updates back in, last-write-wins.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart

	origin string
	repo   Repository
	events *event.Producer
	logger *slog.Logger
}

// NewStore creates a cart store. Repository and event producer are both
// optional.
func NewStore(logger *slog.Logger, repo Repository, events *event.Producer) *Store {
	return &Store{
		carts:  make(map[string]*Cart),
		origin: uuid.New().String(),
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Get returns a copy of the session's cart, loading it from the repository
// on first access. A session with no cart gets an empty one.
func (s *Store) Get(ctx context.Context, sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	if ok {
		defer s.mu.RUnlock()
		return c.clone()
	}
	s.mu.RUnlock()

	if s.repo != nil {
		if snap, err := s.repo.Load(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "cart load failed, starting empty",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		} else if snap != nil && snap.Validate() {
			s.mu.Lock()
			if _, exists := s.carts[sessionID]; !exists {
				s.carts[sessionID] = &Cart{SessionID: sessionID, Items: snap.Items}
			}
			c := s.carts[sessionID].clone()
			s.mu.Unlock()
			return c
		}
	}
	return &Cart{SessionID: sessionID, Items: []Item{}}
}

// AddItem merges a line into the session's cart. An existing line with the
// same (product, size, color) identity gains quantity 1 and keeps its
// original snapshot price; otherwise a new line with quantity 1 is
// appended.
func (s *Store) AddItem(ctx context.Context, sessionID string, in AddInput) (*Cart, error) {
	if in.ProductID == "" {
		return nil, errors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	c := s.ensureLocked(sessionID)
	if i := c.findIndex(in.ProductID, in.Size, in.Color); i >= 0 {
		c.Items[i].Quantity++
	} else {
		c.Items = append(c.Items, Item{
			ProductID:     in.ProductID,
			Size:          in.Size,
			Color:         in.Color,
			Name:          in.Name,
			Price:         in.Price,
			OriginalPrice: in.OriginalPrice,
			Image:         in.Image,
			Quantity:      1,
		})
	}
	out := c.clone()
	s.mu.Unlock()

	s.afterChange(ctx, out)
	return out, nil
}

// RemoveItem deletes the matching line. Removing an absent line is a
// reported no-op.
func (s *Store) RemoveItem(ctx context.Context, sessionID, productID, size, color string) (*Cart, error) {
	s.mu.Lock()
	c := s.ensureLocked(sessionID)
	i := c.findIndex(productID, size, color)
	if i < 0 {
		s.mu.Unlock()
		return nil, errors.NotFound("cart item", productID)
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	out := c.clone()
	s.mu.Unlock()

	s.afterChange(ctx, out)
	return out, nil
}

// UpdateQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID, size, color string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID, size, color)
	}

	s.mu.Lock()
	c := s.ensureLocked(sessionID)
	i := c.findIndex(productID, size, color)
	if i < 0 {
		s.mu.Unlock()
		return nil, errors.NotFound("cart item", productID)
	}
	c.Items[i].Quantity = quantity
	out := c.clone()
	s.mu.Unlock()

	s.afterChange(ctx, out)
	return out, nil
}

// Clear empties the session's cart.
func (s *Store) Clear(ctx context.Context, sessionID string) *Cart {
	s.mu.Lock()
	c := s.ensureLocked(sessionID)
	c.Items = c.Items[:0]
	out := c.clone()
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "cart delete failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.events != nil {
		s.events.CartCleared(ctx, event.CartData{SessionID: sessionID})
	}
	return out
}

// Run consumes cross-session snapshots from the repository until ctx is
// canceled. Snapshots published by this instance, and anything that fails
// shape validation, are dropped; valid remote state replaces local state,
// last-write-wins.
func (s *Store) Run(ctx context.Context) error {
	if s.repo == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	ch, err := s.repo.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch cart changes: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-ch:
			if !ok {
				return nil
			}
			s.applySnapshot(ctx, snap)
		}
	}
}

func (s *Store) applySnapshot(ctx context.Context, snap *Snapshot) {
	if snap == nil || snap.Origin == s.origin {
		return
	}
	if !snap.Validate() {
		s.logger.WarnContext(ctx, "ignoring malformed cart snapshot",
			slog.String("session_id", snap.SessionID),
		)
		return
	}

	s.mu.Lock()
	s.carts[snap.SessionID] = &Cart{
		SessionID: snap.SessionID,
		Items:     append([]Item(nil), snap.Items...),
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "cart snapshot applied",
		slog.String("session_id", snap.SessionID),
		slog.Int("lines", len(snap.Items)),
	)
}

// ensureLocked returns the session's cart, creating it if needed. Callers
// hold the write lock.
func (s *Store) ensureLocked(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{SessionID: sessionID, Items: []Item{}}
		s.carts[sessionID] = c
	}
	return c
}

// afterChange persists the new state and announces it. Both are
// best-effort; the in-memory cart has already committed.
func (s *Store) afterChange(ctx context.Context, c *Cart) {
	if s.repo != nil {
		snap := &Snapshot{
			Version:   SnapshotVersion,
			Origin:    s.origin,
			SessionID: c.SessionID,
			Items:     c.Items,
		}
		if err := s.repo.Save(ctx, snap); err != nil {
			s.logger.WarnContext(ctx, "cart save failed",
				slog.String("session_id", c.SessionID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.events != nil {
		s.events.CartUpdated(ctx, event.CartData{
			SessionID: c.SessionID,
			ItemCount: c.ItemCount(),
			Total:     c.Total(),
		})
	}
}
