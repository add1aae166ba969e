package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/domain"
)

// BookListParams describes a filtered, paginated listing request.
// Page is 1-indexed; PageSize is the fixed number of records per page.
type BookListParams struct {
	// Search filters to books whose title contains the term,
	// case-insensitively. An empty search matches every book.
	Search string

	// Page is the 1-indexed page to return. Values below 1 are treated as 1.
	Page int

	// PageSize is the number of records per page and must be positive.
	PageSize int
}

// Offset returns the number of records to skip for the requested page.
func (p BookListParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return p.PageSize * (page - 1)
}

// BookPatch carries the fields of a partial book update. Nil fields retain
// their prior values. The owner is never part of a patch; it is immutable
// once set.
type BookPatch struct {
	Title       *string
	Description *string
	Author      *string
	Price       *float64
	Category    *domain.Category
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Author == nil &&
		p.Price == nil && p.Category == nil
}

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Create saves a new book to the store.
	// Returns validation errors from the domain Book if data is invalid.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// List returns the books matching params in creation order (created_at
	// ascending, ID as tiebreaker), sliced to the requested page.
	List(ctx context.Context, params BookListParams) ([]*domain.Book, error)

	// UpdateOwned applies patch to the book with the given ID, but only if
	// the record's owner matches ownerID. The existence check and the
	// ownership check execute as a single conditional statement so that
	// concurrent mutations of the same record cannot race between checking
	// and writing. Returns the updated book, or ErrBookNotOwned if no row
	// matched (absent record and foreign owner are indistinguishable).
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch BookPatch) (*domain.Book, error)

	// DeleteOwned removes the book with the given ID if its owner matches
	// ownerID, with the same single-statement conditional semantics as
	// UpdateOwned. Returns the deleted book, or ErrBookNotOwned if no row
	// matched.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Book, error)

	// WithTx returns a new BookStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) BookStore
}
