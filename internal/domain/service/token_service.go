package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens. The identity fields
// mirror what the login response exposes, so a valid token is enough to
// answer "who am I" without a database round trip.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Name   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for the given identity.
	GenerateAccessToken(userID uuid.UUID, email, name string) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured token lifetime.
	GetAccessTokenDuration() time.Duration
}
