package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Book-specific validation errors
var (
	// ErrBookIDEmpty is returned when a book ID is empty or nil.
	ErrBookIDEmpty = errors.New("book ID cannot be empty")

	// ErrBookTitleEmpty is returned when a book's title is empty.
	ErrBookTitleEmpty = errors.New("book title cannot be empty")

	// ErrBookDescriptionEmpty is returned when a book's description is empty.
	ErrBookDescriptionEmpty = errors.New("book description cannot be empty")

	// ErrBookAuthorEmpty is returned when a book's author is empty.
	ErrBookAuthorEmpty = errors.New("book author cannot be empty")

	// ErrBookPriceInvalid is returned when a book's price is not greater than zero.
	ErrBookPriceInvalid = errors.New("book price must be greater than zero")

	// ErrBookCategoryInvalid is returned when a book's category is not one of
	// the recognized values.
	ErrBookCategoryInvalid = errors.New("book category is not a recognized category")
)

// Category is the closed set of book categories. Unrecognized values are
// rejected at the boundary rather than coerced.
type Category string

// Recognized book categories.
const (
	CategoryAdventure Category = "Adventure"
	CategoryClassic   Category = "Classic"
	CategoryCrime     Category = "Crime"
	CategoryFantasy   Category = "Fantasy"
)

// Categories lists every recognized category.
func Categories() []Category {
	return []Category{CategoryAdventure, CategoryClassic, CategoryCrime, CategoryFantasy}
}

// IsValid reports whether c is one of the recognized categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAdventure, CategoryClassic, CategoryCrime, CategoryFantasy:
		return true
	}
	return false
}

// Book represents a catalog entry. The owner is the user who created the
// record; it is assigned by the server at creation and never changed by an
// update. Books created before ownership existed have no owner.
type Book struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Author      string        `json:"author"`
	Price       float64       `json:"price"`
	Category    Category      `json:"category"`
	OwnerID     uuid.NullUUID `json:"-"` // exposed through the API layer as a plain string
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewBook creates a new Book owned by the given user.
// It generates a new UUID for the book ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewBook(ownerID uuid.UUID, title, description, author string, price float64, category Category) (*Book, error) {
	book := &Book{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Author:      author,
		Price:       price,
		Category:    category,
		OwnerID:     uuid.NullUUID{UUID: ownerID, Valid: ownerID != uuid.Nil},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBookIDEmpty
	}

	if b.Title == "" {
		return ErrBookTitleEmpty
	}

	if b.Description == "" {
		return ErrBookDescriptionEmpty
	}

	if b.Author == "" {
		return ErrBookAuthorEmpty
	}

	if b.Price <= 0 {
		return ErrBookPriceInvalid
	}

	if !b.Category.IsValid() {
		return ErrBookCategoryInvalid
	}

	return nil
}
