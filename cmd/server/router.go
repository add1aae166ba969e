package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/bookstore-api/internal/api"
	apimiddleware "github.com/phrazzld/bookstore-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	bookHandler := api.NewBookHandler(app.bookStore, app.config.Books.PageSize, app.logger)
	productHandler := api.NewProductHandler(app.productStore, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	// Authentication endpoints (public)
	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/login", authHandler.Login)

	// Book catalog: reads are public, mutations require authentication
	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.ListBooks)
		r.Get("/{id}", bookHandler.GetBook)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", bookHandler.CreateBook)
			r.Patch("/{id}", bookHandler.UpdateBook)
			r.Delete("/{id}", bookHandler.DeleteBook)
		})
	})

	// Legacy product catalog (public)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{id}", productHandler.GetProduct)
		r.Patch("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
