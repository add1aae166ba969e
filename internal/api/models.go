package api

import (
	"time"

	"github.com/phrazzld/bookstore-api/internal/domain"
)

// Common request/response structures

// SignUpRequest defines the payload for the user signup endpoint.
type SignUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// CreateBookRequest defines the payload for creating a book.
// The User field exists only so that clients sending it can be rejected:
// ownership is server-assigned from the authenticated caller, never taken
// from the payload.
type CreateBookRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Author      string  `json:"author"      validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"required,oneof=Adventure Classic Crime Fantasy"`
	User        *string `json:"user"`
}

// UpdateBookRequest defines the payload for partially updating a book.
// All fields are optional; absent fields keep their stored values.
// Field-level rules re-run on whatever is present.
type UpdateBookRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Author      *string  `json:"author"      validate:"omitempty,min=1"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Category    *string  `json:"category"    validate:"omitempty,oneof=Adventure Classic Crime Fantasy"`
	User        *string  `json:"user"`
}

// BookResponse represents the response data for a book.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	User        *string   `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookEnvelope wraps a single book, matching the {"book": ...} response shape.
type BookEnvelope struct {
	Book BookResponse `json:"book"`
}

// BooksEnvelope wraps a book listing, matching the {"books": [...]} shape.
type BooksEnvelope struct {
	Books []BookResponse `json:"books"`
}

// bookToResponse converts a domain book to its API representation.
func bookToResponse(book *domain.Book) BookResponse {
	resp := BookResponse{
		ID:          book.ID.String(),
		Title:       book.Title,
		Description: book.Description,
		Author:      book.Author,
		Price:       book.Price,
		Category:    string(book.Category),
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
	if book.OwnerID.Valid {
		owner := book.OwnerID.UUID.String()
		resp.User = &owner
	}
	return resp
}

// ProductRequest defines the payload for creating a product.
type ProductRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

// UpdateProductRequest defines the payload for partially updating a product.
type UpdateProductRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
}

// ProductEnvelope wraps a single product response.
type ProductEnvelope struct {
	Product *domain.Product `json:"product"`
}

// ProductsEnvelope wraps a product listing response.
type ProductsEnvelope struct {
	Products []*domain.Product `json:"products"`
}
