package usecase

import (
	"context"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the editable profile fields.
type UpdateProfileInput struct {
	Name   string
	Mobile string
}

// UploadPictureInput carries an uploaded picture through the use case layer.
type UploadPictureInput struct {
	Data             []byte
	DeclaredMIME     string
	OriginalFilename string
}

// ProfileOutput is the profile as presented to clients. PictureURL is the
// absolute URL of the stored picture, nil when none was uploaded.
type ProfileOutput struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile,omitempty"`
	PictureURL *string   `json:"profilePicture"`
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile returns the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile persists new name and mobile values. Submitting
	// identical values is reported as ErrNoChange.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileOutput, error)

	// UploadPicture stores a new profile picture and returns its absolute
	// URL. The previous picture file is removed best-effort.
	UploadPicture(ctx context.Context, userID uuid.UUID, input UploadPictureInput) (string, error)
}
