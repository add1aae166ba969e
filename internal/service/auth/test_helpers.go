package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/config"
)

// testAuthConfig returns an AuthConfig with the given secret and a one-hour
// token lifetime. Used by this package's tests and by handler tests that
// need real tokens.
func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           10,
	}
}

// DefaultJWTConfig returns a standard configuration for JWT authentication
// suitable for testing. This is the single source of truth for JWT test config.
func DefaultJWTConfig() config.AuthConfig {
	return testAuthConfig("test-jwt-secret-that-is-32-chars-long")
}

// NewTestJWTService creates a JWT service with default configuration for testing.
func NewTestJWTService() (JWTService, error) {
	return NewJWTService(DefaultJWTConfig())
}

// MustCreateTestJWTService creates a test JWT service and panics if it fails.
// Useful for test setup where error handling would be verbose.
func MustCreateTestJWTService() JWTService {
	service, err := NewTestJWTService()
	if err != nil {
		panic(fmt.Sprintf("failed to create test JWT service: %v", err))
	}
	return service
}

// GenerateTokenForTesting creates a JWT token for the specified user ID
// without the caller having to instantiate a JWT service.
func GenerateTokenForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	return svc.GenerateToken(context.Background(), userID)
}

// GenerateAuthHeaderForTesting creates an Authorization header value with
// Bearer prefix containing a valid JWT token for the specified user ID.
func GenerateAuthHeaderForTesting(userID uuid.UUID) (string, error) {
	token, err := GenerateTokenForTesting(userID)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
