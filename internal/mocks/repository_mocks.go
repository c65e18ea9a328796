// Package mocks provides hand-rolled testify mocks for the domain
// interfaces used across service tests.
package mocks

import (
	"context"

	"addrbook/internal/domain/entity"
	"addrbook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// ProfileRepository is a mock implementation of repository.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*entity.Profile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

// AddressRepository is a mock implementation of repository.AddressRepository.
type AddressRepository struct {
	mock.Mock
}

func (m *AddressRepository) Create(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *AddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	args := m.Called(ctx, id)
	if address, ok := args.Get(0).(*entity.Address); ok {
		return address, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *AddressRepository) Update(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// UserAddressRepository is a mock implementation of repository.UserAddressRepository.
type UserAddressRepository struct {
	mock.Mock
}

func (m *UserAddressRepository) CreateLink(ctx context.Context, link *entity.UserAddress) error {
	args := m.Called(ctx, link)

	return args.Error(0)
}

func (m *UserAddressRepository) FindLink(ctx context.Context, userID, addressID uuid.UUID) (*entity.UserAddress, error) {
	args := m.Called(ctx, userID, addressID)
	if link, ok := args.Get(0).(*entity.UserAddress); ok {
		return link, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserAddressRepository) FindLinkedAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.LinkedAddress, error) {
	args := m.Called(ctx, userID)
	if linked, ok := args.Get(0).([]*entity.LinkedAddress); ok {
		return linked, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserAddressRepository) ClearDefaults(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *UserAddressRepository) UpdateDefault(ctx context.Context, userID, addressID uuid.UUID, isDefault bool) error {
	args := m.Called(ctx, userID, addressID, isDefault)

	return args.Error(0)
}

// RepositoryFactory hands out the configured mock repositories, standing in
// for a transaction-bound factory.
type RepositoryFactory struct {
	UserRepo        *UserRepository
	ProfileRepo     *ProfileRepository
	AddressRepo     *AddressRepository
	UserAddressRepo *UserAddressRepository
}

func (f *RepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}

func (f *RepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return f.ProfileRepo
}

func (f *RepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return f.AddressRepo
}

func (f *RepositoryFactory) NewUserAddressRepository() repository.UserAddressRepository {
	return f.UserAddressRepo
}

// TransactionManager runs the callback against a fixed factory without any
// real transaction, which is what service-level tests need.
type TransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
