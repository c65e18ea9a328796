// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// It carries the credentials and the email verification state; everything
// shown on the profile page lives in Profile.
type User struct {
	ID                uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name              string    // The user's display name or real name.
	Email             string    // The user's login identifier, stored lowercased.
	PasswordHash      string    // The bcrypt hash of the user's password. Never leaves the service layer.
	Mobile            string    // Optional mobile number in international digits form.
	EmailVerified     bool      // Whether the verification link has been followed.
	VerificationToken string    // One-shot token embedded in the verification link. Empty once verified.
	CreatedAt         time.Time // Timestamp of when this user account was created.
	UpdatedAt         time.Time // Timestamp of the last modification to this user's data.
}
