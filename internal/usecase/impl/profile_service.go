package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"addrbook/config"
	deliverycontext "addrbook/internal/delivery/context"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultPictureMaxBytes = 5 << 20

// allowedPictureTypes maps accepted file extensions to the declared MIME
// types they may arrive with. Both the extension and the MIME type must
// pass, mirroring the upload gate of the web client this API serves.
var allowedPictureTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
}

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	fileStore service.FileStore
	logger    *slog.Logger

	pictureBaseURL  string
	pictureMaxBytes int64
}

// log returns the request-scoped logger when one rode in on the context.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	fileStore service.FileStore,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	baseURL := ""
	maxBytes := int64(defaultPictureMaxBytes)
	if cfg.Uploads != nil {
		baseURL = strings.TrimRight(cfg.Uploads.BaseURL, "/")
		if cfg.Uploads.MaxBytes > 0 {
			maxBytes = cfg.Uploads.MaxBytes
		}
	}

	return &profileService{
		txManager:       txManager,
		fileStore:       fileStore,
		logger:          logger,
		pictureBaseURL:  baseURL,
		pictureMaxBytes: maxBytes,
	}
}

// GetProfile retrieves the user's profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Debug("Getting profile", slog.String("userID", userID.String()))

	var output *usecase.ProfileOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		output = srv.toProfileOutput(profile.UserID, profile.Name, profile.Email, profile.Mobile, profile.ProfilePicture)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return output, nil
}

// UpdateProfile persists new name and mobile values. Submitting values
// identical to the stored ones is reported as ErrNoChange.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Info("Updating profile", slog.String("userID", userID.String()))

	var output *usecase.ProfileOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if profile.Name == input.Name && profile.Mobile == input.Mobile {
			return errors.Wrap(domainerrors.ErrNoChange, "profile fields unchanged")
		}

		profile.Name = input.Name
		profile.Mobile = input.Mobile
		if err := profileRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		output = srv.toProfileOutput(profile.UserID, profile.Name, profile.Email, profile.Mobile, profile.ProfilePicture)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return output, nil
}

// UploadPicture stores a new profile picture and updates the profile
// reference. The previous file is deleted best-effort after the new
// reference is committed; a leftover file never breaks the profile.
func (srv *profileService) UploadPicture(ctx context.Context, userID uuid.UUID, input usecase.UploadPictureInput) (string, error) {
	srv.log(ctx).Info("Uploading profile picture",
		slog.String("userID", userID.String()),
		slog.String("filename", input.OriginalFilename),
		slog.Int("size", len(input.Data)))

	ext, err := validatePicture(input)
	if err != nil {
		return "", err
	}
	if int64(len(input.Data)) > srv.pictureMaxBytes {
		return "", errors.Wrap(domainerrors.ErrPayloadTooLarge, "picture exceeds size limit")
	}

	// Unique name: upload timestamp plus a random component.
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := srv.fileStore.Write(ctx, name, input.Data, input.DeclaredMIME); err != nil {
		return "", errors.Wrap(err, "failed to store picture")
	}

	var previous string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		profile, err := profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		previous = profile.ProfilePicture
		profile.ProfilePicture = name
		if err := profileRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update picture reference")
		}

		return nil
	})
	if err != nil {
		// The profile still points at the old picture; drop the orphan.
		if cleanupErr := srv.fileStore.Delete(ctx, name); cleanupErr != nil {
			srv.log(ctx).Warn("failed to remove orphaned picture",
				slog.String("name", name),
				slog.Any("error", cleanupErr))
		}

		return "", errors.Wrap(err, "failed to upload picture")
	}

	if previous != "" {
		if err := srv.fileStore.Delete(ctx, previous); err != nil {
			srv.log(ctx).Warn("failed to remove previous picture",
				slog.String("name", previous),
				slog.Any("error", err))
		}
	}

	return srv.pictureURL(name), nil
}

// validatePicture gates uploads on extension and declared MIME type, and
// returns the normalized extension.
func validatePicture(input usecase.UploadPictureInput) (string, error) {
	ext := strings.ToLower(filepath.Ext(input.OriginalFilename))
	mimes, ok := allowedPictureTypes[ext]
	if !ok {
		return "", errors.Wrapf(domainerrors.ErrUnsupportedMediaType, "extension %q not allowed", ext)
	}

	declared := strings.ToLower(strings.TrimSpace(input.DeclaredMIME))
	for _, mime := range mimes {
		if declared == mime {
			return ext, nil
		}
	}

	return "", errors.Wrapf(domainerrors.ErrUnsupportedMediaType, "mime type %q not allowed", declared)
}

func (srv *profileService) toProfileOutput(userID uuid.UUID, name, email, mobile, picture string) *usecase.ProfileOutput {
	output := &usecase.ProfileOutput{
		ID:     userID,
		Name:   name,
		Email:  email,
		Mobile: mobile,
	}
	if picture != "" {
		url := srv.pictureURL(picture)
		output.PictureURL = &url
	}

	return output
}

func (srv *profileService) pictureURL(name string) string {
	return srv.pictureBaseURL + "/" + name
}
