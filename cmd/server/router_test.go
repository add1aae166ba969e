package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bookstore-api/internal/config"
	"github.com/phrazzld/bookstore-api/internal/platform/memory"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
)

// newTestApplication builds an application with in-memory dependencies.
// No database is involved, so tests stick to routes that do not reach the
// Postgres-backed stores.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
			Auth:   auth.DefaultJWTConfig(),
			Books:  config.BooksConfig{PageSize: 2},
		},
		logger:           logger,
		productStore:     memory.NewMemoryProductStore(logger),
		jwtService:       auth.MustCreateTestJWTService(),
		passwordHasher:   auth.NewBcryptHasher(4),
		passwordVerifier: auth.NewBcryptVerifier(),
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	get := func(t *testing.T, target string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("health check", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("product listing is public", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/products")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("book mutations require a token", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			method string
			target string
		}{
			{http.MethodPost, "/books"},
			{http.MethodPatch, "/books/0c2d4a46-9f25-4d83-9c60-53a9bd09b4ba"},
			{http.MethodDelete, "/books/0c2d4a46-9f25-4d83-9c60-53a9bd09b4ba"},
		}
		for _, tc := range tests {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code,
				"%s %s should be gated", tc.method, tc.target)
		}
	})
}
