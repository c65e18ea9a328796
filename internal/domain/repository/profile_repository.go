package repository

import (
	"context"
	"errors"

	"addrbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is a domain-specific error returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
type ProfileRepository interface {
	// FindByUserID retrieves the profile belonging to the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile. Called in the same transaction that
	// creates the user row.
	Create(ctx context.Context, profile *entity.Profile) error

	// Update modifies an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error
}
