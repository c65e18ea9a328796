package impl

import (
	"bytes"
	"context"
	"testing"

	"addrbook/config"
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

const testPictureBaseURL = "http://localhost:3000/uploads/profile-pictures"

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service     usecase.ProfileUsecase
	profileRepo *mocks.ProfileRepository
	fileStore   *mocks.FileStore
}

func createTestProfileService(t *testing.T, maxBytes int64) profileServiceFixtures {
	t.Helper()

	profileRepo := &mocks.ProfileRepository{}
	fileStore := &mocks.FileStore{}

	txManager := &mocks.TransactionManager{
		Factory: &mocks.RepositoryFactory{
			ProfileRepo: profileRepo,
		},
	}

	cfg := &config.Config{
		Uploads: &config.UploadsConfig{
			Dir:      t.TempDir(),
			BaseURL:  testPictureBaseURL,
			MaxBytes: maxBytes,
		},
	}

	service := NewProfileService(cfg, txManager, fileStore, discardLogger())

	return profileServiceFixtures{
		service:     service,
		profileRepo: profileRepo,
		fileStore:   fileStore,
	}
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).Return(&entity.Profile{
		UserID:         userID,
		Name:           "Test User",
		Email:          "test@example.com",
		Mobile:         "+6591234567",
		ProfilePicture: "123-abc.png",
	}, nil)

	output, err := fx.service.GetProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "Test User", output.Name)
	require.NotNil(t, output.PictureURL)
	assert.Equal(t, testPictureBaseURL+"/123-abc.png", *output.PictureURL)
}

func TestProfileService_GetProfile_NoPicture(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).Return(&entity.Profile{
		UserID: userID,
		Name:   "Test User",
	}, nil)

	output, err := fx.service.GetProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.Nil(t, output.PictureURL, "missing picture must render as null, not an empty URL")
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).
		Return(nil, repository.ErrProfileNotFound)

	_, err := fx.service.GetProfile(context.Background(), userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).Return(&entity.Profile{
		UserID: userID,
		Name:   "Old Name",
		Mobile: "+6591234567",
	}, nil)
	fx.profileRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Profile")).Return(nil)

	output, err := fx.service.UpdateProfile(context.Background(), userID, usecase.UpdateProfileInput{
		Name:   "New Name",
		Mobile: "+6598765432",
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", output.Name)
	assert.Equal(t, "+6598765432", output.Mobile)
	fx.profileRepo.AssertExpectations(t)
}

func TestProfileService_UpdateProfile_NoChange(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).Return(&entity.Profile{
		UserID: userID,
		Name:   "Same Name",
		Mobile: "+6591234567",
	}, nil)

	_, err := fx.service.UpdateProfile(context.Background(), userID, usecase.UpdateProfileInput{
		Name:   "Same Name",
		Mobile: "+6591234567",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoChange))
	fx.profileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_UploadPicture_RejectsExtension(t *testing.T) {
	fx := createTestProfileService(t, 0)

	_, err := fx.service.UploadPicture(context.Background(), uuid.New(), usecase.UploadPictureInput{
		Data:             []byte("not an image"),
		DeclaredMIME:     "image/png",
		OriginalFilename: "payload.exe",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedMediaType))
	fx.fileStore.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadPicture_RejectsMIME(t *testing.T) {
	fx := createTestProfileService(t, 0)

	_, err := fx.service.UploadPicture(context.Background(), uuid.New(), usecase.UploadPictureInput{
		Data:             []byte("not an image"),
		DeclaredMIME:     "application/octet-stream",
		OriginalFilename: "picture.png",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedMediaType),
		"extension and declared MIME must both pass")
	fx.fileStore.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadPicture_RejectsOversize(t *testing.T) {
	fx := createTestProfileService(t, 16)

	_, err := fx.service.UploadPicture(context.Background(), uuid.New(), usecase.UploadPictureInput{
		Data:             bytes.Repeat([]byte("x"), 17),
		DeclaredMIME:     "image/png",
		OriginalFilename: "picture.png",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPayloadTooLarge))
	fx.fileStore.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadPicture_ReplacesPrevious(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).Return(&entity.Profile{
		UserID:         userID,
		Name:           "Test User",
		ProfilePicture: "old-picture.png",
	}, nil)
	fx.profileRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Profile")).Return(nil)

	var storedName string
	fx.fileStore.On("Write", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").
		Run(func(args mock.Arguments) {
			storedName = args.String(1)
		}).
		Return(nil)
	fx.fileStore.On("Delete", mock.Anything, "old-picture.png").Return(nil)

	url, err := fx.service.UploadPicture(context.Background(), userID, usecase.UploadPictureInput{
		Data:             []byte("jpeg bytes"),
		DeclaredMIME:     "image/jpeg",
		OriginalFilename: "me.JPG",
	})

	require.NoError(t, err)
	assert.Equal(t, testPictureBaseURL+"/"+storedName, url)
	assert.Contains(t, storedName, ".jpg", "stored name keeps the normalized extension")
	fx.fileStore.AssertExpectations(t)
}

func TestProfileService_UploadPicture_CleansUpOrphanOnFailure(t *testing.T) {
	fx := createTestProfileService(t, 0)
	userID := uuid.New()

	fx.profileRepo.On("FindByUserID", mock.Anything, userID).
		Return(nil, repository.ErrProfileNotFound)

	var storedName string
	fx.fileStore.On("Write", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/png").
		Run(func(args mock.Arguments) {
			storedName = args.String(1)
		}).
		Return(nil)
	fx.fileStore.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := fx.service.UploadPicture(context.Background(), userID, usecase.UploadPictureInput{
		Data:             []byte("png bytes"),
		DeclaredMIME:     "image/png",
		OriginalFilename: "me.png",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
	fx.fileStore.AssertCalled(t, "Delete", mock.Anything, storedName)
}
