package repository

import (
	"context"
	"errors"

	"addrbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address or a user's link to it is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address row operations.
// Ownership is tracked separately through UserAddressRepository.
type AddressRepository interface {
	// Create persists a new address row.
	Create(ctx context.Context, address *entity.Address) error

	// FindByID retrieves an address by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// Update updates an existing address record.
	Update(ctx context.Context, address *entity.Address) error

	// Delete removes an address by its ID. Link rows are removed by the
	// database cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserAddressRepository operates on the user-address link table, which
// carries the per-user default flag.
type UserAddressRepository interface {
	// CreateLink persists a new link between a user and an address.
	CreateLink(ctx context.Context, link *entity.UserAddress) error

	// FindLink retrieves the link row for the given user and address.
	// Returns ErrAddressNotFound when the user has no such link, so
	// other users' addresses are indistinguishable from missing ones.
	FindLink(ctx context.Context, userID, addressID uuid.UUID) (*entity.UserAddress, error)

	// FindLinkedAddresses retrieves every address linked to the user,
	// each annotated with the link's default flag.
	FindLinkedAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.LinkedAddress, error)

	// ClearDefaults unsets the default flag on every link of the user.
	ClearDefaults(ctx context.Context, userID uuid.UUID) error

	// UpdateDefault sets or unsets the default flag on one link.
	UpdateDefault(ctx context.Context, userID, addressID uuid.UUID, isDefault bool) error
}
