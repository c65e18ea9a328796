package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the user-editable presentation data. It is created together
// with the User row and shares its lifetime (cascade delete).
type Profile struct {
	UserID         uuid.UUID // Foreign Key that links this profile to a core User entity.
	Name           string    // Display name, editable independently of the account name.
	Email          string    // Mirror of the account email, shown on the profile page.
	Mobile         string    // Mobile number shown on the profile page.
	ProfilePicture string    // Stored filename of the profile picture. Empty when none was uploaded.
	CreatedAt      time.Time // Timestamp of when this profile was created.
	UpdatedAt      time.Time // Timestamp of the last modification to this profile.
}
