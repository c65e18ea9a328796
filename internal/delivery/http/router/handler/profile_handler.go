package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"addrbook/internal/delivery/http/middleware"
	"addrbook/internal/delivery/http/response"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// pictureFormField is the multipart field carrying the uploaded picture.
const pictureFormField = "profilePicture"

// ProfileHandler holds dependencies for profile-related handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

type updateProfileRequest struct {
	Name   string `json:"name" validate:"required,min=3,max=50,personname"`
	Mobile string `json:"mobile" validate:"required,mobile"`
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile retrieved successfully")
}

// UpdateProfile updates the authenticated user's profile fields.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:   req.Name,
		Mobile: req.Mobile,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated successfully")
}

// UploadPicture replaces the authenticated user's profile picture.
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	fileHeader, err := c.FormFile(pictureFormField)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Form field 'profilePicture' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded file")
	}

	url, err := h.uc.UploadPicture(c.Request().Context(), userID, usecase.UploadPictureInput{
		Data:             data,
		DeclaredMIME:     fileHeader.Header.Get("Content-Type"),
		OriginalFilename: fileHeader.Filename,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"profilePicture": url,
	}, "Profile picture updated successfully")
}

// userIDFromContext reads the authenticated user ID set by the auth middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}
