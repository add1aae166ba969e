package api

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for handler tests.
type fakeUserStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: %s", store.ErrEmailExists, user.Email)
		}
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, user := range s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

var _ store.UserStore = (*fakeUserStore)(nil)

// fakeBookStore is an in-memory store.BookStore for handler tests. It mirrors
// the conditional semantics of the real store: UpdateOwned and DeleteOwned
// only apply when the record exists with a matching owner.
type fakeBookStore struct {
	mu      sync.Mutex
	books   map[uuid.UUID]*domain.Book
	listErr error
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[uuid.UUID]*domain.Book)}
}

func (s *fakeBookStore) Create(ctx context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := book.Validate(); err != nil {
		return err
	}
	b := *book
	s.books[book.ID] = &b
	return nil
}

func (s *fakeBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	b := *book
	return &b, nil
}

func (s *fakeBookStore) List(ctx context.Context, params store.BookListParams) ([]*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	matched := make([]*domain.Book, 0, len(s.books))
	needle := strings.ToLower(params.Search)
	for _, book := range s.books {
		if needle == "" || strings.Contains(strings.ToLower(book.Title), needle) {
			b := *book
			matched = append(matched, &b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	offset := params.Offset()
	if offset >= len(matched) {
		return []*domain.Book{}, nil
	}
	end := offset + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeBookStore) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch store.BookPatch) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok || !book.OwnerID.Valid || book.OwnerID.UUID != ownerID {
		return nil, store.ErrBookNotOwned
	}
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}
	if patch.Category != nil {
		book.Category = *patch.Category
	}
	b := *book
	return &b, nil
}

func (s *fakeBookStore) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok || !book.OwnerID.Valid || book.OwnerID.UUID != ownerID {
		return nil, store.ErrBookNotOwned
	}
	delete(s.books, id)
	b := *book
	return &b, nil
}

func (s *fakeBookStore) WithTx(tx *sql.Tx) store.BookStore { return s }

var _ store.BookStore = (*fakeBookStore)(nil)
