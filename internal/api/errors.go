package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MapErrorToStatusCode maps domain, store and auth errors to the HTTP
// status code the API contract promises for them. Unrecognized errors
// map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Owner-scoped mutations deliberately conflate "no such book" with
	// "not yours"; both surface as an unprocessable request.
	case errors.Is(err, store.ErrBookNotOwned):
		return http.StatusUnprocessableEntity

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the given error.
// Internal details never leak; only stable, documented messages go out.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrBookNotOwned):
		return "You are not allowed to update or delete this book"
	case errors.Is(err, store.ErrEmailExists):
		return "Email address is already registered"
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return ve.Message
		}
		return "Invalid request"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials"
	default:
		return "An internal error occurred"
	}
}

// respondWithMappedError writes the response the error taxonomy dictates:
// recognized errors get their contract status and safe message, anything
// else becomes a logged 500 with the given fallback message.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, fallback, err)
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

// SanitizeValidationError converts a validator error into a short
// client-facing message naming the first failing field and rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Invalid request"
	}

	fieldErr := validationErrs[0]
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return "Field '" + field + "' is required"
	case "email":
		return "Field '" + field + "' must be a valid email address"
	case "min":
		return "Field '" + field + "' is too short"
	case "max":
		return "Field '" + field + "' is too long"
	case "gt":
		return "Field '" + field + "' must be greater than " + fieldErr.Param()
	case "oneof":
		return "Field '" + field + "' must be one of: " + fieldErr.Param()
	default:
		return "Field '" + field + "' is invalid"
	}
}
