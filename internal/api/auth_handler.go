package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/redact"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		logger:           log.With(slog.String("component", "auth_handler")),
	}
}

// SignUp handles user registration requests. On success it creates the user
// with a hashed password and returns a fresh token, so signup doubles as the
// first login.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req SignUpRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			respondWithMappedError(w, r, err, "Failed to create user")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token after signup",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{Token: token})
}

// Login handles user authentication requests. Unknown email and wrong
// password produce the same response so the endpoint cannot be used to
// probe which addresses are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Authentication failed", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		log.Debug("password mismatch during login",
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token during login",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{Token: token})
}
