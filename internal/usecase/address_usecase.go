package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AddressInput defines the writable address fields. IsDefault is optional;
// when set on create or update it is routed through the same transactional
// default-switching logic as SetDefault.
type AddressInput struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsDefault    *bool
}

// AddressOutput is an address as presented to clients, annotated with the
// caller's default flag.
type AddressOutput struct {
	ID           uuid.UUID `json:"id"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postalCode"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AddressUsecase defines the interface for address book operations. Every
// operation is scoped to the calling user; addresses of other users are
// reported as not found.
type AddressUsecase interface {
	// ListAddresses returns every address linked to the user.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*AddressOutput, error)

	// GetAddress returns one linked address.
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*AddressOutput, error)

	// CreateAddress creates an address and links it to the user.
	CreateAddress(ctx context.Context, userID uuid.UUID, input AddressInput) (*AddressOutput, error)

	// UpdateAddress updates a linked address.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input AddressInput) (*AddressOutput, error)

	// DeleteAddress removes a linked address.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// SetDefault switches the default flag of one linked address. Setting
	// it clears every other default of the user in the same transaction.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID, isDefault bool) error
}
