// Package wishlist tracks favorited products per session, independent of
// cart or purchase intent.
package wishlist

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raincoat98/lumina/pkg/errors"
)

// Entry is one favorited product. Display fields are snapshots captured
// when the entry was added.
type Entry struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image,omitempty"`
	Rating    float64   `json:"rating"`
	AddedAt   time.Time `json:"added_at"`
}

// AddInput is the product snapshot captured at add time.
type AddInput struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	Price     int64   `json:"price" validate:"min=0"`
	Image     string  `json:"image,omitempty"`
	Rating    float64 `json:"rating"`
}

// Store keeps one wishlist per session. Membership is a true set keyed by
// product ID: re-adding a present product is a no-op, never a duplicate
// entry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]Entry
}

// NewStore creates an empty wishlist store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]map[string]Entry)}
}

// Add inserts an entry for the product. Adding a product that is already
// present returns the existing entry unchanged.
func (s *Store) Add(sessionID string, in AddInput) (Entry, error) {
	if in.ProductID == "" {
		return Entry{}, errors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.ensureLocked(sessionID)
	if existing, ok := set[in.ProductID]; ok {
		return existing, nil
	}

	e := Entry{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
		Rating:    in.Rating,
		AddedAt:   time.Now().UTC(),
	}
	set[in.ProductID] = e
	return e, nil
}

// Remove deletes the entry with the given entry ID.
func (s *Store) Remove(sessionID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sessions[sessionID]
	for productID, e := range set {
		if e.ID == entryID {
			delete(set, productID)
			return nil
		}
	}
	return errors.NotFound("wishlist entry", entryID)
}

// RemoveByProductID deletes the entry for the given product.
func (s *Store) RemoveByProductID(sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sessions[sessionID]
	if _, ok := set[productID]; !ok {
		return errors.NotFound("wishlist entry", productID)
	}
	delete(set, productID)
	return nil
}

// Toggle adds the product when absent and removes it when present. The
// returned flag reports whether the product is a member afterwards.
func (s *Store) Toggle(sessionID string, in AddInput) (bool, Entry, error) {
	if in.ProductID == "" {
		return false, Entry{}, errors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.ensureLocked(sessionID)
	if _, ok := set[in.ProductID]; ok {
		delete(set, in.ProductID)
		return false, Entry{}, nil
	}

	e := Entry{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
		Rating:    in.Rating,
		AddedAt:   time.Now().UTC(),
	}
	set[in.ProductID] = e
	return true, e, nil
}

// Contains reports membership for a product in O(1).
func (s *Store) Contains(sessionID, productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID][productID]
	return ok
}

// Count returns the number of entries in the session's wishlist.
func (s *Store) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID])
}

// List returns the session's entries, most recently added first.
func (s *Store) List(sessionID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.sessions[sessionID]
	out := make([]Entry, 0, len(set))
	for _, e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// Clear empties the session's wishlist.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) ensureLocked(sessionID string) map[string]Entry {
	set, ok := s.sessions[sessionID]
	if !ok {
		set = make(map[string]Entry)
		s.sessions[sessionID] = set
	}
	return set
}
