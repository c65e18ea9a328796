package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory backing store for the fake repositories. All
// access happens under the serialTxManager mutex, mimicking serialized
// database transactions.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	profiles  map[uuid.UUID]*entity.Profile
	addresses map[uuid.UUID]*entity.Address
	links     map[uuid.UUID][]*entity.UserAddress
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*entity.User),
		profiles:  make(map[uuid.UUID]*entity.Profile),
		addresses: make(map[uuid.UUID]*entity.Address),
		links:     make(map[uuid.UUID][]*entity.UserAddress),
	}
}

// serialTxManager serializes every Execute call over one memStore, the way
// the real manager relies on database transactions to do.
type serialTxManager struct {
	store *memStore
}

func newSerialTxManager(store *memStore) repository.TransactionManager {
	return &serialTxManager{store: store}
}

func (m *serialTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	return fn(&memFactory{store: m.store})
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) NewUserRepository() repository.UserRepository {
	return &memUserRepo{store: f.store}
}

func (f *memFactory) NewProfileRepository() repository.ProfileRepository {
	return &memProfileRepo{store: f.store}
}

func (f *memFactory) NewAddressRepository() repository.AddressRepository {
	return &memAddressRepo{store: f.store}
}

func (f *memFactory) NewUserAddressRepository() repository.UserAddressRepository {
	return &memLinkRepo{store: f.store}
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == strings.ToLower(email) {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	for _, user := range r.store.users {
		if !user.EmailVerified && user.VerificationToken != "" && user.VerificationToken == token {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.store.users[user.ID] = &copied

	return nil
}

func (r *memUserRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	user, ok := r.store.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.EmailVerified = true
	user.VerificationToken = ""
	user.UpdatedAt = time.Now()

	return nil
}

type memProfileRepo struct {
	store *memStore
}

func (r *memProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, ok := r.store.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copied := *profile

	return &copied, nil
}

func (r *memProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	copied := *profile
	r.store.profiles[profile.UserID] = &copied

	return nil
}

func (r *memProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	if _, ok := r.store.profiles[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	copied := *profile
	copied.UpdatedAt = time.Now()
	r.store.profiles[profile.UserID] = &copied

	return nil
}

type memAddressRepo struct {
	store *memStore
}

func (r *memAddressRepo) Create(_ context.Context, address *entity.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt
	copied := *address
	r.store.addresses[address.ID] = &copied

	return nil
}

func (r *memAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	address, ok := r.store.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	copied := *address

	return &copied, nil
}

func (r *memAddressRepo) Update(_ context.Context, address *entity.Address) error {
	if _, ok := r.store.addresses[address.ID]; !ok {
		return repository.ErrAddressNotFound
	}
	copied := *address
	copied.UpdatedAt = time.Now()
	r.store.addresses[address.ID] = &copied

	return nil
}

func (r *memAddressRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.addresses[id]; !ok {
		return repository.ErrAddressNotFound
	}
	delete(r.store.addresses, id)

	// Cascade: drop link rows pointing at the deleted address.
	for userID, links := range r.store.links {
		kept := links[:0]
		for _, link := range links {
			if link.AddressID != id {
				kept = append(kept, link)
			}
		}
		r.store.links[userID] = kept
	}

	return nil
}

type memLinkRepo struct {
	store *memStore
}

func (r *memLinkRepo) CreateLink(_ context.Context, link *entity.UserAddress) error {
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	copied := *link
	r.store.links[link.UserID] = append(r.store.links[link.UserID], &copied)

	return nil
}

func (r *memLinkRepo) FindLink(_ context.Context, userID, addressID uuid.UUID) (*entity.UserAddress, error) {
	for _, link := range r.store.links[userID] {
		if link.AddressID == addressID {
			copied := *link

			return &copied, nil
		}
	}

	return nil, repository.ErrAddressNotFound
}

func (r *memLinkRepo) FindLinkedAddresses(_ context.Context, userID uuid.UUID) ([]*entity.LinkedAddress, error) {
	linked := make([]*entity.LinkedAddress, 0, len(r.store.links[userID]))
	for _, link := range r.store.links[userID] {
		address, ok := r.store.addresses[link.AddressID]
		if !ok {
			return nil, fmt.Errorf("link without address row: %s", link.AddressID)
		}
		linked = append(linked, &entity.LinkedAddress{
			Address:   *address,
			IsDefault: link.IsDefault,
		})
	}

	return linked, nil
}

func (r *memLinkRepo) ClearDefaults(_ context.Context, userID uuid.UUID) error {
	for _, link := range r.store.links[userID] {
		link.IsDefault = false
	}

	return nil
}

func (r *memLinkRepo) UpdateDefault(_ context.Context, userID, addressID uuid.UUID, isDefault bool) error {
	for _, link := range r.store.links[userID] {
		if link.AddressID == addressID {
			link.IsDefault = isDefault
			link.UpdatedAt = time.Now()

			return nil
		}
	}

	return repository.ErrAddressNotFound
}

// countDefaults reports how many of the user's links carry the default flag.
func (s *memStore) countDefaults(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, link := range s.links[userID] {
		if link.IsDefault {
			count++
		}
	}

	return count
}
