package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is the core entity for a postal address. Ownership and the
// default flag live on the UserAddress link, not on the address itself.
type Address struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the address.
	AddressLine1 string    // First address line, required.
	AddressLine2 string    // Second address line, optional.
	City         string    // City, required.
	State        string    // State or region, optional.
	PostalCode   string    // Postal code, required.
	Country      string    // Country, defaults to "SINGAPORE" when left empty.
	CreatedAt    time.Time // Timestamp of when this address was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// UserAddress links a user to an address and carries the per-user default
// flag. At most one link per user may have IsDefault set; the service layer
// enforces this inside a transaction.
type UserAddress struct {
	UserID    uuid.UUID // The owning user.
	AddressID uuid.UUID // The linked address.
	IsDefault bool      // Whether this address is the user's default.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LinkedAddress is an Address annotated with the link's default flag, as
// returned by address listings.
type LinkedAddress struct {
	Address
	IsDefault bool
}
