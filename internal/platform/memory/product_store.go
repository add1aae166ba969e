// Package memory provides in-process implementations of persistence
// interfaces. The legacy product catalog lives here; it predates the
// database-backed resources and was never migrated.
package memory

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MemoryProductStore implements store.ProductStore with a mutex-guarded map.
// IDs are sequential decimal strings ("1", "2", ...) matching the behavior
// clients of the old products API rely on.
type MemoryProductStore struct {
	mu       sync.Mutex
	nextID   int
	products map[string]*domain.Product
	order    []string // insertion order for List
	logger   *slog.Logger
}

// NewMemoryProductStore creates an empty in-memory product store.
// If logger is nil, a default logger will be used.
func NewMemoryProductStore(logger *slog.Logger) *MemoryProductStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryProductStore{
		nextID:   1,
		products: make(map[string]*domain.Product),
		logger:   logger.With(slog.String("component", "product_store")),
	}
}

// Ensure MemoryProductStore implements store.ProductStore interface
var _ store.ProductStore = (*MemoryProductStore)(nil)

// Create implements store.ProductStore.Create
func (s *MemoryProductStore) Create(_ context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = strconv.Itoa(s.nextID)
	s.nextID++

	stored := *product
	s.products[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	s.logger.Info("product created",
		slog.String("product_id", stored.ID),
		slog.String("title", stored.Title))
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *MemoryProductStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}

	out := *product
	return &out, nil
}

// List implements store.ProductStore.List
// Products come back in insertion order.
func (s *MemoryProductStore) List(_ context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out := *s.products[id]
		products = append(products, &out)
	}
	return products, nil
}

// Update implements store.ProductStore.Update
// Nil patch fields keep their prior values.
func (s *MemoryProductStore) Update(_ context.Context, id string, patch store.ProductPatch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}

	updated := *product
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	s.products[id] = &updated
	out := updated
	return &out, nil
}

// Delete implements store.ProductStore.Delete
// Returns the removed product.
func (s *MemoryProductStore) Delete(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}

	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Info("product deleted", slog.String("product_id", id))
	out := *product
	return &out, nil
}
