package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewBook(t *testing.T) {
	ownerID := uuid.New()

	book, err := NewBook(ownerID, "Dune", "Desert planet epic", "Frank Herbert", 12.50, CategoryAdventure)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.ID == uuid.Nil {
		t.Error("Expected non-nil book ID")
	}

	if !book.OwnerID.Valid || book.OwnerID.UUID != ownerID {
		t.Errorf("Expected owner %s, got %v", ownerID, book.OwnerID)
	}

	if book.CreatedAt.IsZero() || book.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewBookWithoutOwner(t *testing.T) {
	// Legacy records created before ownership existed carry no owner.
	book, err := NewBook(uuid.Nil, "Dune", "Desert planet epic", "Frank Herbert", 12.50, CategoryAdventure)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.OwnerID.Valid {
		t.Error("Expected absent owner for nil owner ID")
	}
}

func TestBookValidate(t *testing.T) {
	valid := func() *Book {
		return &Book{
			ID:          uuid.New(),
			Title:       "Dune",
			Description: "Desert planet epic",
			Author:      "Frank Herbert",
			Price:       12.50,
			Category:    CategoryAdventure,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Book)
		wantErr error
	}{
		{"valid book", func(b *Book) {}, nil},
		{"empty title", func(b *Book) { b.Title = "" }, ErrBookTitleEmpty},
		{"empty description", func(b *Book) { b.Description = "" }, ErrBookDescriptionEmpty},
		{"empty author", func(b *Book) { b.Author = "" }, ErrBookAuthorEmpty},
		{"zero price", func(b *Book) { b.Price = 0 }, ErrBookPriceInvalid},
		{"negative price", func(b *Book) { b.Price = -3 }, ErrBookPriceInvalid},
		{"unknown category", func(b *Book) { b.Category = "Romance" }, ErrBookCategoryInvalid},
		{"empty category", func(b *Book) { b.Category = "" }, ErrBookCategoryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := valid()
			tt.mutate(book)
			if err := book.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Errorf("Expected category %q to be valid", c)
		}
	}

	for _, c := range []Category{"", "adventure", "SciFi"} {
		if c.IsValid() {
			t.Errorf("Expected category %q to be invalid", c)
		}
	}
}
