package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *fakeUserStore, auth.JWTService) {
	t.Helper()
	users := newFakeUserStore()
	jwtService := auth.MustCreateTestJWTService()
	handler := NewAuthHandler(users, jwtService,
		auth.NewBcryptHasher(bcrypt.MinCost), auth.NewBcryptVerifier(), nil)
	return handler, users, jwtService
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	validBody := SignUpRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "password123",
	}

	t.Run("success returns token", func(t *testing.T) {
		t.Parallel()
		handler, users, jwtService := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignUp, "/auth/signup", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeAuthResponse(t, rec)
		require.NotEmpty(t, resp.Token)

		claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)

		stored, err := users.GetByID(context.Background(), claims.UserID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", stored.Email)
	})

	t.Run("stores a hash, not the password", func(t *testing.T) {
		t.Parallel()
		handler, users, _ := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignUp, "/auth/signup", validBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		stored, err := users.GetByEmail(context.Background(), validBody.Email)
		require.NoError(t, err)
		assert.Empty(t, stored.Password)
		assert.NotEqual(t, validBody.Password, stored.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.HashedPassword), []byte(validBody.Password)))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		handler, _, _ := newTestAuthHandler(t)

		first := postJSON(t, handler.SignUp, "/auth/signup", validBody)
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Name:     "Other Ada",
			Email:    "ADA@example.com", // same address, different case
			Password: "differentpw1",
		})
		assert.Equal(t, http.StatusConflict, second.Code)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			body SignUpRequest
		}{
			{"missing name", SignUpRequest{Email: "a@example.com", Password: "password123"}},
			{"missing email", SignUpRequest{Name: "Ada", Password: "password123"}},
			{"bad email", SignUpRequest{Name: "Ada", Email: "not-an-email", Password: "password123"}},
			{"short password", SignUpRequest{Name: "Ada", Email: "a@example.com", Password: "short"}},
		}
		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				handler, _, _ := newTestAuthHandler(t)
				rec := postJSON(t, handler.SignUp, "/auth/signup", tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		handler, _, _ := newTestAuthHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.SignUp(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	signUp := func(t *testing.T, handler *AuthHandler, email, password string) {
		t.Helper()
		rec := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Name:     "Test User",
			Email:    email,
			Password: password,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("success returns token", func(t *testing.T) {
		t.Parallel()
		handler, _, jwtService := newTestAuthHandler(t)
		signUp(t, handler, "login@example.com", "password123")

		rec := postJSON(t, handler.Login, "/auth/login", LoginRequest{
			Email:    "login@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeAuthResponse(t, rec)
		require.NotEmpty(t, resp.Token)
		_, err := jwtService.ValidateToken(context.Background(), resp.Token)
		assert.NoError(t, err)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		handler, _, _ := newTestAuthHandler(t)
		signUp(t, handler, "login@example.com", "password123")

		unknown := postJSON(t, handler.Login, "/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		wrongPw := postJSON(t, handler.Login, "/auth/login", LoginRequest{
			Email:    "login@example.com",
			Password: "wrongpassword",
		})

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)

		var unknownResp, wrongResp map[string]any
		require.NoError(t, json.NewDecoder(unknown.Body).Decode(&unknownResp))
		require.NoError(t, json.NewDecoder(wrongPw.Body).Decode(&wrongResp))
		assert.Equal(t, unknownResp["error"], wrongResp["error"])
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		t.Parallel()
		handler, _, _ := newTestAuthHandler(t)
		rec := postJSON(t, handler.Login, "/auth/login", LoginRequest{Email: "a@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// Ensure domain-level password rules back up the request validation.
func TestSignUpDomainPasswordFloor(t *testing.T) {
	t.Parallel()
	_, err := domain.NewUser("Ada", "ada@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}
