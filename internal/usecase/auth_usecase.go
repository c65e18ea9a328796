// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"addrbook/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// The delivery layer validates field shapes before the input reaches here;
// Email arrives already trimmed and lowercased.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Mobile   string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
// The delivery layer is responsible for not exposing sensitive fields.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines the interface for registration and login operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates the user and its profile, and sends the
	// verification email.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// VerifyEmail consumes a verification token. A token can only be
	// consumed once.
	VerifyEmail(ctx context.Context, token string) error

	// Login checks the credentials and issues an access token. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
