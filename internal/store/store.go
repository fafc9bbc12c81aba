package store

import (
	"errors"
	"sync"

	"catalog-service/internal/models"
)

var (
	// ErrNotFound is returned when no product exists for the given id.
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned when inserting an id that is already present.
	ErrConflict = errors.New("product id already exists")
)

// Store is an in-memory keyed product store. Iteration order is
// insertion order, which keeps pagination deterministic. All reads
// return copies, so a snapshot taken before a mutation stays intact.
type Store struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	order    []string
}

// NewStore creates an empty product store
func NewStore() *Store {
	return &Store{
		products: make(map[string]*models.Product),
	}
}

// Insert adds a new product. Returns ErrConflict if the id is taken.
func (s *Store) Insert(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return ErrConflict
	}

	s.products[product.ID] = product.Clone()
	s.order = append(s.order, product.ID)
	return nil
}

// Get retrieves a product by id. Returns ErrNotFound if absent.
func (s *Store) Get(id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, ErrNotFound
	}
	return product.Clone(), nil
}

// Put overwrites an existing product. Returns ErrNotFound if the id
// is absent; callers must Insert first.
func (s *Store) Put(id string, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrNotFound
	}
	s.products[id] = product.Clone()
	return nil
}

// Delete removes a product permanently. Returns ErrNotFound if absent.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrNotFound
	}
	delete(s.products, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns a snapshot of every product in insertion order.
func (s *Store) All() []*models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*models.Product, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.products[id].Clone())
	}
	return snapshot
}

// Len returns the number of stored products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
