package store

import (
	"context"
	"sync"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
)

// inMemory implements ProductStore using an in-memory map. Used in tests.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	order    []int64
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindPage retrieves up to limit products in insertion order, skipping skip rows.
func (s *inMemory) FindPage(_ context.Context, limit, skip int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, limit)
	for i := skip; i < len(s.order) && len(list) < limit; i++ {
		list = append(list, s.products[s.order[i]])
	}
	return list, nil
}

// Insert creates a new product and returns it with the assigned ID.
func (s *inMemory) Insert(_ context.Context, p Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	return &p, nil
}

// Save overwrites an existing product.
func (s *inMemory) Save(_ context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		return perrors.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

// Remove deletes a product by its ID.
func (s *inMemory) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
