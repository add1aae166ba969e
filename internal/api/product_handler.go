package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// ProductHandler handles requests for the legacy product catalog.
// Products predate the auth model: every endpoint is public and IDs are
// plain sequential strings rather than UUIDs.
type ProductHandler struct {
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
func NewProductHandler(productStore store.ProductStore, log *slog.Logger) *ProductHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ProductHandler{
		productStore: productStore,
		logger:       log.With(slog.String("component", "product_handler")),
	}
}

// ListProducts returns every product in insertion order.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list products", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductsEnvelope{Products: products})
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productStore.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to get product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductEnvelope{Product: product})
}

// CreateProduct adds a product to the catalog and returns it with its
// assigned ID.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req ProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	product := &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := h.productStore.Create(ctx, product); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create product", err)
		return
	}

	log.Info("product created", slog.String("product_id", product.ID))

	shared.RespondWithJSON(w, r, http.StatusCreated, ProductEnvelope{Product: product})
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := store.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}

	product, err := h.productStore.Update(r.Context(), id, patch)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to update product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductEnvelope{Product: product})
}

// DeleteProduct removes a product and echoes the removed record.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productStore.Delete(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to delete product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductEnvelope{Product: product})
}
