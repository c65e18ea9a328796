// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	logger       *slog.Logger
}

// log returns the request-scoped logger when one rode in on the context.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		mailer:       mailer,
		logger:       logger,
	}
}

// Register creates the user together with its profile and sends the
// verification email. The email send is best-effort: a mail failure after
// the commit is logged, not surfaced, so the account is not lost.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Registering user", slog.String("email", email))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		Name:              input.Name,
		Email:             email,
		PasswordHash:      passwordHash,
		Mobile:            input.Mobile,
		VerificationToken: uuid.NewString(),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		profileRepo := repoFactory.NewProfileRepository()

		// 1. Reject duplicate emails before attempting the insert.
		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return errors.Wrap(domainerrors.ErrEmailExists, "email already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		// 2. Create the user row.
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		// 3. Create the profile row mirroring the account fields.
		profile := &entity.Profile{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Mobile: user.Mobile,
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register user")
	}

	if err := srv.mailer.SendVerificationEmail(user.Name, user.Email, user.VerificationToken); err != nil {
		srv.log(ctx).Error("failed to send verification email",
			slog.String("email", user.Email),
			slog.Any("error", err))
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()))

	return &usecase.RegisterOutput{User: user}, nil
}

// VerifyEmail consumes a verification token. The token is cleared in the
// same update that sets the verified flag, so replays fail.
func (srv *authService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.Wrap(domainerrors.ErrInvalidToken, "empty verification token")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByVerificationToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "unknown verification token")
			}

			return errors.Wrap(err, "failed to look up verification token")
		}

		if err := userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to mark email verified")
		}

		srv.log(ctx).Info("Email verified", slog.String("userID", user.ID.String()))

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to verify email")
	}

	return nil
}

// Login checks the credentials and issues an access token. Unknown email
// and wrong password produce the identical error so accounts cannot be
// enumerated; only a correct password reveals the unverified state.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		foundUser, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = foundUser

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log in")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.EmailVerified {
		return nil, errors.Wrap(domainerrors.ErrEmailNotVerified, "email not verified")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("User logged in", slog.String("userID", user.ID.String()))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		User:        user,
	}, nil
}
