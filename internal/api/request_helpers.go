package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/api/middleware"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
)

// getUserIDFromRequest extracts the authenticated user ID placed in the
// context by the auth middleware. It writes a 401 response and returns
// false when the request carries no authenticated user.
func getUserIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID parses the named chi URL parameter as a UUID.
func getPathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name,
			fmt.Sprintf("%q is not a valid UUID", raw), domain.ErrInvalidID)
	}
	return id, nil
}
