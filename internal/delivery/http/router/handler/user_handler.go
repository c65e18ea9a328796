// Package handler contains the HTTP handlers for the application.
package handler

import (
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

// UserHandler holds dependencies for registration and login handlers.
type UserHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.AuthUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Name            string `json:"name" validate:"required,min=3,max=50,personname"`
	Email           string `json:"email" validate:"required,email,max=50"`
	Password        string `json:"password" validate:"required,min=8,max=50,passwordcomplexity"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Mobile          string `json:"mobile" validate:"omitempty,mobile"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=8,max=50,passwordcomplexity"`
}

// userResponse is the public shape of an account. Credentials and the
// verification token never appear here.
type userResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Mobile        string    `json:"mobile,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	user := userResponse{
		ID:            output.User.ID,
		Name:          output.User.Name,
		Email:         output.User.Email,
		Mobile:        output.User.Mobile,
		EmailVerified: output.User.EmailVerified,
	}

	return response.Success(c, http.StatusCreated, user,
		"User registered successfully. Please check your email to verify your account.")
}

// VerifyEmail handles the email verification link.
func (h *UserHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")

	if err := h.uc.VerifyEmail(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified successfully.")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
		"user": userResponse{
			ID:            output.User.ID,
			Name:          output.User.Name,
			Email:         output.User.Email,
			Mobile:        output.User.Mobile,
			EmailVerified: output.User.EmailVerified,
		},
	}, "Login successful")
}

// WhoAmI returns the identity carried by the bearer token.
func (h *UserHandler) WhoAmI(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}
	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)
	name, _ := c.Get(middleware.ContextKeyUserName).(string)

	return response.Success(c, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":    userID.String(),
			"email": email,
			"name":  name,
		},
	}, "Authenticated")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
