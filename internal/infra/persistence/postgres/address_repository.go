package postgres

import (
	"context"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the domain.AddressRepository interface using GORM.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Create persists a new address row.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID
	address.Country = addressM.Country
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindByID retrieves an address by its unique ID.
func (repo *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by id")
	}

	return toAddressDomain(&addressM), nil
}

// Update updates an existing address record.
func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"address_line1": addressM.AddressLine1,
			"address_line2": addressM.AddressLine2,
			"city":          addressM.City,
			"state":         addressM.State,
			"postal_code":   addressM.PostalCode,
			"country":       addressM.Country,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// Delete removes an address by its ID. Link rows are removed by the database cascade.
func (repo *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AddressModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// userAddressRepository implements the domain.UserAddressRepository interface using GORM.
type userAddressRepository struct {
	db *gorm.DB
}

// NewUserAddressRepository is the constructor for userAddressRepository.
func NewUserAddressRepository(db *gorm.DB) repository.UserAddressRepository {
	return &userAddressRepository{db: db}
}

// CreateLink persists a new link between a user and an address.
func (repo *userAddressRepository) CreateLink(ctx context.Context, link *entity.UserAddress) error {
	linkM := fromUserAddressDomain(link)

	if err := repo.db.WithContext(ctx).Create(linkM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAddressNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address link")
	}

	link.CreatedAt = linkM.CreatedAt
	link.UpdatedAt = linkM.UpdatedAt

	return nil
}

// FindLink retrieves the link row for the given user and address.
func (repo *userAddressRepository) FindLink(ctx context.Context, userID, addressID uuid.UUID) (*entity.UserAddress, error) {
	var linkM model.UserAddressModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND address_id = ?", userID, addressID).
		First(&linkM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A link owned by another user looks exactly like a missing one.
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address link")
	}

	return toUserAddressDomain(&linkM), nil
}

// FindLinkedAddresses retrieves every address linked to the user with the
// link's default flag. Two queries keep the mapping explicit: links first,
// then the address rows they point at.
func (repo *userAddressRepository) FindLinkedAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.LinkedAddress, error) {
	var linkMs []model.UserAddressModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&linkMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address links")
	}

	if len(linkMs) == 0 {
		return []*entity.LinkedAddress{}, nil
	}

	addressIDs := make([]uuid.UUID, 0, len(linkMs))
	for _, linkM := range linkMs {
		addressIDs = append(addressIDs, linkM.AddressID)
	}

	var addressMs []model.AddressModel
	err = repo.db.WithContext(ctx).
		Where("id IN ?", addressIDs).
		Find(&addressMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find linked addresses")
	}

	addressesByID := make(map[uuid.UUID]*model.AddressModel, len(addressMs))
	for i := range addressMs {
		addressesByID[addressMs[i].ID] = &addressMs[i]
	}

	linked := make([]*entity.LinkedAddress, 0, len(linkMs))
	for _, linkM := range linkMs {
		addressM, ok := addressesByID[linkM.AddressID]
		if !ok {
			// Link without an address row, skip rather than fail the listing.
			continue
		}
		linked = append(linked, &entity.LinkedAddress{
			Address:   *toAddressDomain(addressM),
			IsDefault: linkM.IsDefault,
		})
	}

	return linked, nil
}

// ClearDefaults unsets the default flag on every link of the user.
func (repo *userAddressRepository) ClearDefaults(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.UserAddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear default addresses")
	}

	return nil
}

// UpdateDefault sets or unsets the default flag on one link.
func (repo *userAddressRepository) UpdateDefault(ctx context.Context, userID, addressID uuid.UUID, isDefault bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserAddressModel{}).
		Where("user_id = ? AND address_id = ?", userID, addressID).
		Update("is_default", isDefault)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update default flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	address := &entity.Address{
		ID:           data.ID,
		AddressLine1: data.AddressLine1,
		City:         data.City,
		PostalCode:   data.PostalCode,
		Country:      data.Country,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.AddressLine2 != nil {
		address.AddressLine2 = *data.AddressLine2
	}
	if data.State != nil {
		address.State = *data.State
	}

	return address
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:           data.ID,
		AddressLine1: data.AddressLine1,
		AddressLine2: optionalString(data.AddressLine2),
		City:         data.City,
		State:        optionalString(data.State),
		PostalCode:   data.PostalCode,
		Country:      data.Country,
	}
}

// toUserAddressDomain converts a GORM UserAddressModel to a domain UserAddress entity.
func toUserAddressDomain(data *model.UserAddressModel) *entity.UserAddress {
	if data == nil {
		return nil
	}

	return &entity.UserAddress{
		UserID:    data.UserID,
		AddressID: data.AddressID,
		IsDefault: data.IsDefault,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUserAddressDomain converts a domain UserAddress entity to a GORM UserAddressModel.
func fromUserAddressDomain(data *entity.UserAddress) *model.UserAddressModel {
	if data == nil {
		return nil
	}

	return &model.UserAddressModel{
		UserID:    data.UserID,
		AddressID: data.AddressID,
		IsDefault: data.IsDefault,
	}
}
