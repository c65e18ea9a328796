package impl

import (
	"context"
	"net/http"
	"testing"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/mocks"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mocks.UserRepository
	profileRepo  *mocks.ProfileRepository
	hasher       *mocks.PasswordHasher
	tokenService *mocks.TokenService
	mailer       *mocks.Mailer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	userRepo := &mocks.UserRepository{}
	profileRepo := &mocks.ProfileRepository{}
	hasher := &mocks.PasswordHasher{}
	tokenService := &mocks.TokenService{}
	mailer := &mocks.Mailer{}

	txManager := &mocks.TransactionManager{
		Factory: &mocks.RepositoryFactory{
			UserRepo:    userRepo,
			ProfileRepo: profileRepo,
		},
	}

	service := NewAuthService(txManager, hasher, tokenService, mailer, discardLogger())

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		hasher:       hasher,
		tokenService: tokenService,
		mailer:       mailer,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "password1",
		Mobile:   "+6591234567",
	}

	userID := uuid.New()
	fx.hasher.On("Hash", "password1").Return("hashed-password", nil)
	fx.userRepo.On("FindByEmail", mock.Anything, "test@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = userID
		}).
		Return(nil)
	fx.profileRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Profile")).
		Return(nil)
	fx.mailer.On("SendVerificationEmail", "Test User", "test@example.com", mock.AnythingOfType("string")).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "test@example.com", output.User.Email, "email should be lowercased")
	assert.Equal(t, "hashed-password", output.User.PasswordHash)
	assert.NotEmpty(t, output.User.VerificationToken)
	assert.False(t, output.User.EmailVerified)

	// The profile mirrors the account fields at creation time.
	profileCall := fx.profileRepo.Calls[0]
	profile := profileCall.Arguments.Get(1).(*entity.Profile)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, "test@example.com", profile.Email)

	fx.userRepo.AssertExpectations(t)
	fx.profileRepo.AssertExpectations(t)
	fx.mailer.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "taken@example.com"}
	fx.hasher.On("Hash", "password1").Return("hashed-password", nil)
	fx.userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(existing, nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "password1",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailExists))
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Register_MailFailureDoesNotFailRegistration(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "password1").Return("hashed-password", nil)
	fx.userRepo.On("FindByEmail", mock.Anything, "test@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.profileRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Profile")).Return(nil)
	fx.mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp connection refused"))

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password1",
	})

	require.NoError(t, err, "mail failure must not lose the account")
	assert.NotNil(t, output)
}

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), VerificationToken: "token-abc"}
	fx.userRepo.On("FindByVerificationToken", mock.Anything, "token-abc").
		Return(user, nil)
	fx.userRepo.On("MarkEmailVerified", mock.Anything, user.ID).Return(nil)

	err := fx.service.VerifyEmail(ctx, "token-abc")

	require.NoError(t, err)
	fx.userRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_EmptyToken(t *testing.T) {
	fx := createTestAuthService(t)

	err := fx.service.VerifyEmail(context.Background(), "  ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	fx.userRepo.AssertNotCalled(t, "FindByVerificationToken", mock.Anything, mock.Anything)
}

func TestAuthService_VerifyEmail_UnknownToken(t *testing.T) {
	fx := createTestAuthService(t)

	fx.userRepo.On("FindByVerificationToken", mock.Anything, "no-such-token").
		Return(nil, repository.ErrUserNotFound)

	err := fx.service.VerifyEmail(context.Background(), "no-such-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

// A token is cleared in the same update that sets the verified flag, so a
// second visit to the same link must fail.
func TestAuthService_VerifyEmail_ReplayFails(t *testing.T) {
	store := newMemStore()
	txManager := newSerialTxManager(store)
	hasher := &mocks.PasswordHasher{}
	tokenService := &mocks.TokenService{}
	mailer := &mocks.Mailer{}
	mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hasher.On("Hash", mock.Anything).Return("hashed-password", nil)

	service := NewAuthService(txManager, hasher, tokenService, mailer, discardLogger())

	ctx := context.Background()
	output, err := service.Register(ctx, usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	token := output.User.VerificationToken

	require.NoError(t, service.VerifyEmail(ctx, token))

	err = service.VerifyEmail(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:            uuid.New(),
		Name:          "Test User",
		Email:         "test@example.com",
		PasswordHash:  "hashed-password",
		EmailVerified: true,
	}
	fx.userRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	fx.hasher.On("Check", "password1", "hashed-password").Return(true)
	fx.tokenService.On("GenerateAccessToken", user.ID, user.Email, user.Name).
		Return("signed-token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "Test@Example.com",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, user.ID, output.User.ID)
}

// Unknown email and wrong password must be indistinguishable to the caller,
// otherwise login becomes an account enumeration oracle.
func TestAuthService_Login_GenericFailureMessage(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", mock.Anything, "unknown@example.com").
		Return(nil, repository.ErrUserNotFound)

	user := &entity.User{
		ID:            uuid.New(),
		Email:         "known@example.com",
		PasswordHash:  "hashed-password",
		EmailVerified: true,
	}
	fx.userRepo.On("FindByEmail", mock.Anything, "known@example.com").Return(user, nil)
	fx.hasher.On("Check", "wrong-password1", "hashed-password").Return(false)

	_, unknownEmailErr := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "unknown@example.com",
		Password: "password1",
	})
	_, wrongPasswordErr := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "known@example.com",
		Password: "wrong-password1",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.True(t, errors.Is(unknownEmailErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(wrongPasswordErr, domainerrors.ErrInvalidCredentials))

	var appErrA, appErrB domainerrors.AppError
	require.True(t, errors.As(unknownEmailErr, &appErrA))
	require.True(t, errors.As(wrongPasswordErr, &appErrB))
	assert.Equal(t, appErrA.Message(), appErrB.Message())
	assert.Equal(t, appErrA.ErrorCode(), appErrB.ErrorCode())

	// Bad credentials are a 400 like any other invalid login payload; 401
	// is reserved for requests without a valid bearer token.
	assert.Equal(t, http.StatusBadRequest, appErrA.HTTPCode())
	assert.Equal(t, http.StatusBadRequest, appErrB.HTTPCode())
}

func TestAuthService_Login_UnverifiedEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:            uuid.New(),
		Email:         "test@example.com",
		PasswordHash:  "hashed-password",
		EmailVerified: false,
	}
	fx.userRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	fx.hasher.On("Check", "password1", "hashed-password").Return(true)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "test@example.com",
		Password: "password1",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailNotVerified))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials),
		"unverified state is distinct from a credential failure")
	fx.tokenService.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything, mock.Anything)
}
