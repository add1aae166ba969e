package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// bookColumns is the column list shared by every book query so scans stay
// aligned with a single definition.
const bookColumns = `id, user_id, title, description, author, price, category, created_at, updated_at`

// scanBook reads one book row. The row must have been selected with bookColumns.
func scanBook(row interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var book domain.Book
	var category string

	err := row.Scan(
		&book.ID,
		&book.OwnerID,
		&book.Title,
		&book.Description,
		&book.Author,
		&book.Price,
		&category,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.Category = domain.Category(category)
	return &book, nil
}

// Create implements store.BookStore.Create
// It saves a new book to the database, handling domain validation.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	query := `
		INSERT INTO books (id, user_id, title, description, author, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.OwnerID,
		book.Title,
		book.Description,
		book.Author,
		book.Price,
		string(book.Category),
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return MapError(err)
	}

	log.Info("book created successfully",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))
	return nil
}

// GetByID implements store.BookStore.GetByID
// It retrieves a book by its unique ID.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1
	`

	book, err := scanBook(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, MapError(err)
	}

	return book, nil
}

// List implements store.BookStore.List
// It filters by case-insensitive title substring when params.Search is set
// and slices the result to the requested page. Ordering is by creation time
// with the ID as tiebreaker, so pagination is stable across requests.
func (s *PostgresBookStore) List(ctx context.Context, params store.BookListParams) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE $1 = '' OR strpos(lower(title), lower($1)) > 0
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, params.Search, params.PageSize, params.Offset())
	if err != nil {
		log.Error("failed to list books",
			slog.String("error", err.Error()),
			slog.String("search", params.Search),
			slog.Int("page", params.Page))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]*domain.Book, 0, params.PageSize)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("failed to scan book row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		log.Error("failed while iterating book rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return books, nil
}

// UpdateOwned implements store.BookStore.UpdateOwned
// The ownership check and the mutation run as one conditional UPDATE so a
// concurrent delete or update of the same record cannot slip between a
// separate check and write. COALESCE keeps columns whose patch field is nil.
// Returns store.ErrBookNotOwned if no row matched the id/owner pair.
func (s *PostgresBookStore) UpdateOwned(
	ctx context.Context,
	id, ownerID uuid.UUID,
	patch store.BookPatch,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE books
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    author = COALESCE($5, author),
		    price = COALESCE($6, price),
		    category = COALESCE($7, category),
		    updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING ` + bookColumns + `
	`

	var category *string
	if patch.Category != nil {
		c := string(*patch.Category)
		category = &c
	}

	book, err := scanBook(s.db.QueryRowContext(
		ctx,
		query,
		id,
		ownerID,
		patch.Title,
		patch.Description,
		patch.Author,
		patch.Price,
		category,
		time.Now().UTC(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absent record and foreign owner land here together; the caller
			// must not be able to tell them apart.
			log.Debug("owner-conditional update matched no row",
				slog.String("book_id", id.String()))
			return nil, store.ErrBookNotOwned
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("book updated successfully",
		slog.String("book_id", id.String()))
	return book, nil
}

// DeleteOwned implements store.BookStore.DeleteOwned
// Same single-statement conditional semantics as UpdateOwned.
// Returns the deleted book, or store.ErrBookNotOwned if no row matched.
func (s *PostgresBookStore) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM books
		WHERE id = $1 AND user_id = $2
		RETURNING ` + bookColumns + `
	`

	book, err := scanBook(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("owner-conditional delete matched no row",
				slog.String("book_id", id.String()))
			return nil, store.ErrBookNotOwned
		}
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("book deleted successfully",
		slog.String("book_id", id.String()))
	return book, nil
}

// WithTx implements store.BookStore.WithTx
// It returns a new BookStore that runs its statements on the given transaction.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:     tx,
		logger: s.logger,
	}
}
