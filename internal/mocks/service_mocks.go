package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"addrbook/internal/domain/service"
)

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateAccessToken(userID uuid.UUID, email, name string) (string, error) {
	args := m.Called(userID, email, name)

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) GetAccessTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// Mailer is a mock implementation of service.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) IsEnabled() bool {
	args := m.Called()

	return args.Bool(0)
}

func (m *Mailer) SendVerificationEmail(recipientName, recipientEmail, token string) error {
	args := m.Called(recipientName, recipientEmail, token)

	return args.Error(0)
}

// FileStore is a mock implementation of service.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Write(ctx context.Context, name string, data []byte, contentType string) error {
	args := m.Called(ctx, name, data, contentType)

	return args.Error(0)
}

func (m *FileStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)

	return args.Error(0)
}
