package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// BookHandler handles book catalog requests. Reads are public; mutations
// require an authenticated caller and, for updates and deletes, ownership
// of the record.
type BookHandler struct {
	bookStore store.BookStore
	pageSize  int
	logger    *slog.Logger
}

// NewBookHandler creates a new BookHandler with the given dependencies.
// pageSize is the fixed number of records per listing page.
func NewBookHandler(bookStore store.BookStore, pageSize int, log *slog.Logger) *BookHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BookHandler{
		bookStore: bookStore,
		pageSize:  pageSize,
		logger:    log.With(slog.String("component", "book_handler")),
	}
}

// ListBooks handles paginated, searchable book listing requests.
// Query parameters: search (case-insensitive title substring) and page
// (1-indexed; anything unparseable falls back to 1).
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	params := store.BookListParams{
		Search:   query.Get("search"),
		Page:     page,
		PageSize: h.pageSize,
	}

	books, err := h.bookStore.List(ctx, params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list books", err)
		return
	}

	resp := BooksEnvelope{Books: make([]BookResponse, 0, len(books))}
	for _, book := range books {
		resp.Books = append(resp.Books, bookToResponse(book))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetBook handles single-book lookup requests.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to get book")
		return
	}

	book, err := h.bookStore.GetByID(ctx, id)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to get book")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookEnvelope{Book: bookToResponse(book)})
}

// CreateBook handles book creation requests. The owner is always the
// authenticated caller; payloads trying to set one are rejected outright
// rather than silently ignored.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	userID, ok := getUserIDFromRequest(w, r)
	if !ok {
		return
	}

	var req CreateBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.User != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Field 'user' cannot be set; ownership is assigned by the server")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	book, err := domain.NewBook(userID, req.Title, req.Description, req.Author,
		req.Price, domain.Category(req.Category))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.bookStore.Create(ctx, book); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create book", err)
		return
	}

	log.Info("book created",
		slog.String("book_id", book.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, BookEnvelope{Book: bookToResponse(book)})
}

// UpdateBook handles partial book updates. The update only applies when the
// record exists and belongs to the caller; either miss yields a 422 so the
// response does not reveal whether the book exists under another owner.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	userID, ok := getUserIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to update book")
		return
	}

	var req UpdateBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.User != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Field 'user' cannot be changed; ownership is immutable")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := store.BookPatch{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Price:       req.Price,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		patch.Category = &category
	}

	book, err := h.bookStore.UpdateOwned(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrBookNotOwned) {
			log.Debug("owner-scoped update matched no row",
				slog.String("book_id", id.String()),
				slog.String("user_id", userID.String()))
		}
		respondWithMappedError(w, r, err, "Failed to update book")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookEnvelope{Book: bookToResponse(book)})
}

// DeleteBook handles book deletion with the same owner-conditional
// semantics as UpdateBook. The deleted record is echoed back.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	userID, ok := getUserIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to delete book")
		return
	}

	book, err := h.bookStore.DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotOwned) {
			log.Debug("owner-scoped delete matched no row",
				slog.String("book_id", id.String()),
				slog.String("user_id", userID.String()))
		}
		respondWithMappedError(w, r, err, "Failed to delete book")
		return
	}

	log.Info("book deleted",
		slog.String("book_id", book.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, BookEnvelope{Book: bookToResponse(book)})
}
