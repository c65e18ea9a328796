package impl

import (
	"context"
	"log/slog"

	deliverycontext "addrbook/internal/delivery/context"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultCountry = "SINGAPORE"

// addressService implements the AddressUsecase interface.
//
// Every default-flag mutation runs clear-siblings-then-set inside one
// transaction, so at most one link per user carries the flag on any path.
type addressService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// log returns the request-scoped logger when one rode in on the context.
func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NewAddressService is the constructor for addressService.
func NewAddressService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListAddresses returns every address linked to the user. An empty address
// book yields an empty slice, not an error.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*usecase.AddressOutput, error) {
	srv.log(ctx).Debug("Listing addresses", slog.String("userID", userID.String()))

	var outputs []*usecase.AddressOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		linkRepo := repoFactory.NewUserAddressRepository()

		linked, err := linkRepo.FindLinkedAddresses(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}

		outputs = make([]*usecase.AddressOutput, 0, len(linked))
		for _, la := range linked {
			outputs = append(outputs, toAddressOutput(&la.Address, la.IsDefault))
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return outputs, nil
}

// GetAddress returns one linked address. Addresses of other users are
// reported as not found.
func (srv *addressService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*usecase.AddressOutput, error) {
	srv.log(ctx).Debug("Getting address",
		slog.String("userID", userID.String()),
		slog.String("addressID", addressID.String()))

	var output *usecase.AddressOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		link, address, err := srv.findOwnedAddress(ctx, repoFactory, userID, addressID)
		if err != nil {
			return err
		}

		output = toAddressOutput(address, link.IsDefault)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get address")
	}

	return output, nil
}

// CreateAddress creates an address row and links it to the user in one
// transaction. A requested default clears the user's other defaults first.
func (srv *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, input usecase.AddressInput) (*usecase.AddressOutput, error) {
	srv.log(ctx).Info("Creating address", slog.String("userID", userID.String()))

	address := &entity.Address{
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}
	if address.Country == "" {
		address.Country = defaultCountry
	}

	isDefault := input.IsDefault != nil && *input.IsDefault

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()
		linkRepo := repoFactory.NewUserAddressRepository()

		if err := addressRepo.Create(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		if isDefault {
			if err := linkRepo.ClearDefaults(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to clear previous defaults")
			}
		}

		link := &entity.UserAddress{
			UserID:    userID,
			AddressID: address.ID,
			IsDefault: isDefault,
		}
		if err := linkRepo.CreateLink(ctx, link); err != nil {
			return errors.Wrap(err, "failed to link address")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create address")
	}

	return toAddressOutput(address, isDefault), nil
}

// UpdateAddress updates a linked address. An explicit IsDefault goes
// through the same clear-then-set sequence as SetDefault.
func (srv *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input usecase.AddressInput) (*usecase.AddressOutput, error) {
	srv.log(ctx).Info("Updating address",
		slog.String("userID", userID.String()),
		slog.String("addressID", addressID.String()))

	var output *usecase.AddressOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()
		linkRepo := repoFactory.NewUserAddressRepository()

		link, address, err := srv.findOwnedAddress(ctx, repoFactory, userID, addressID)
		if err != nil {
			return err
		}

		address.AddressLine1 = input.AddressLine1
		address.AddressLine2 = input.AddressLine2
		address.City = input.City
		address.State = input.State
		address.PostalCode = input.PostalCode
		address.Country = input.Country
		if address.Country == "" {
			address.Country = defaultCountry
		}

		if err := addressRepo.Update(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}

		isDefault := link.IsDefault
		if input.IsDefault != nil && *input.IsDefault != link.IsDefault {
			if err := srv.switchDefault(ctx, linkRepo, userID, addressID, *input.IsDefault); err != nil {
				return err
			}
			isDefault = *input.IsDefault
		}

		output = toAddressOutput(address, isDefault)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update address")
	}

	return output, nil
}

// DeleteAddress removes a linked address. The link rows disappear with the
// address row via the database cascade.
func (srv *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	srv.log(ctx).Info("Deleting address",
		slog.String("userID", userID.String()),
		slog.String("addressID", addressID.String()))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()
		linkRepo := repoFactory.NewUserAddressRepository()

		if _, err := linkRepo.FindLink(ctx, userID, addressID); err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "address not linked to user")
			}

			return errors.Wrap(err, "failed to check address ownership")
		}

		if err := addressRepo.Delete(ctx, addressID); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

// SetDefault switches the default flag of one linked address.
func (srv *addressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID, isDefault bool) error {
	srv.log(ctx).Info("Setting default address",
		slog.String("userID", userID.String()),
		slog.String("addressID", addressID.String()),
		slog.Bool("isDefault", isDefault))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		linkRepo := repoFactory.NewUserAddressRepository()

		if _, err := linkRepo.FindLink(ctx, userID, addressID); err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "address not linked to user")
			}

			return errors.Wrap(err, "failed to check address ownership")
		}

		return srv.switchDefault(ctx, linkRepo, userID, addressID, isDefault)
	})
	if err != nil {
		return errors.Wrap(err, "failed to set default address")
	}

	return nil
}

// switchDefault performs the clear-then-set sequence. It must run inside a
// transaction so concurrent switches cannot leave two defaults.
func (srv *addressService) switchDefault(ctx context.Context, linkRepo repository.UserAddressRepository, userID, addressID uuid.UUID, isDefault bool) error {
	if isDefault {
		if err := linkRepo.ClearDefaults(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear previous defaults")
		}
	}

	if err := linkRepo.UpdateDefault(ctx, userID, addressID, isDefault); err != nil {
		return errors.Wrap(err, "failed to update default flag")
	}

	return nil
}

// findOwnedAddress resolves the link and address rows, translating a
// missing link into the public not-found error.
func (srv *addressService) findOwnedAddress(ctx context.Context, repoFactory repository.RepositoryFactory, userID, addressID uuid.UUID) (*entity.UserAddress, *entity.Address, error) {
	linkRepo := repoFactory.NewUserAddressRepository()
	addressRepo := repoFactory.NewAddressRepository()

	link, err := linkRepo.FindLink(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address not linked to user")
		}

		return nil, nil, errors.Wrap(err, "failed to check address ownership")
	}

	address, err := addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address row missing")
		}

		return nil, nil, errors.Wrap(err, "failed to load address")
	}

	return link, address, nil
}

func toAddressOutput(address *entity.Address, isDefault bool) *usecase.AddressOutput {
	return &usecase.AddressOutput{
		ID:           address.ID,
		AddressLine1: address.AddressLine1,
		AddressLine2: address.AddressLine2,
		City:         address.City,
		State:        address.State,
		PostalCode:   address.PostalCode,
		Country:      address.Country,
		IsDefault:    isDefault,
		CreatedAt:    address.CreatedAt,
		UpdatedAt:    address.UpdatedAt,
	}
}
