package store

import (
	"context"

	"github.com/phrazzld/bookstore-api/internal/domain"
)

// ProductStore defines the interface for the legacy product catalog.
// Products predate the auth model and are served from process memory.
type ProductStore interface {
	// Create saves a new product and assigns it a sequential string ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products in insertion order.
	List(ctx context.Context) ([]*domain.Product, error)

	// Update applies non-nil fields of patch to the product with the given ID.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)

	// Delete removes a product by its ID and returns the removed record.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

// ProductPatch carries the fields of a partial product update.
// Nil fields retain their prior values.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
}
