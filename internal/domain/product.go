package domain

import "errors"

// Product-specific validation errors
var (
	ErrProductTitleEmpty   = errors.New("product title cannot be empty")
	ErrProductPriceInvalid = errors.New("product price must be greater than zero")
)

// Product is a catalog entry from the service's earlier, pre-auth iteration.
// Products carry no owner and live in an in-memory store; the resource is
// kept for compatibility with clients of the old API.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrProductTitleEmpty
	}

	if p.Price <= 0 {
		return ErrProductPriceInvalid
	}

	return nil
}
