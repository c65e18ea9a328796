package handler

import (
	"log/slog"
	"net/http"

	"addrbook/internal/delivery/http/response"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AddressHandler holds dependencies for address book handlers.
type AddressHandler struct {
	uc     usecase.AddressUsecase
	logger *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler, injected by Fx.
func NewAddressHandler(uc usecase.AddressUsecase, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		uc:     uc,
		logger: logger,
	}
}

type addressRequest struct {
	AddressLine1 string `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `json:"addressLine2" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"omitempty,max=100"`
	PostalCode   string `json:"postalCode" validate:"required,max=20"`
	Country      string `json:"country" validate:"omitempty,max=100"`
	IsDefault    *bool  `json:"isDefault"`
}

type setDefaultRequest struct {
	IsDefault *bool `json:"isDefault" validate:"required"`
}

// ListAddresses returns every address of the authenticated user.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	addresses, err := h.uc.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, addresses, "Addresses retrieved successfully")
}

// GetAddress returns one address of the authenticated user.
func (h *AddressHandler) GetAddress(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	addressID, ok := addressIDFromPath(c)
	if !ok {
		return response.NotFound(c, "ADDRESS_NOT_FOUND", "Address not found.")
	}

	address, err := h.uc.GetAddress(c.Request().Context(), userID, addressID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Address retrieved successfully")
}

// CreateAddress creates a new address for the authenticated user.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	address, err := h.uc.CreateAddress(c.Request().Context(), userID, toAddressInput(req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, address, "Address created successfully")
}

// UpdateAddress updates one address of the authenticated user.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	addressID, ok := addressIDFromPath(c)
	if !ok {
		return response.NotFound(c, "ADDRESS_NOT_FOUND", "Address not found.")
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	address, err := h.uc.UpdateAddress(c.Request().Context(), userID, addressID, toAddressInput(req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Address updated successfully")
}

// DeleteAddress removes one address of the authenticated user.
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	addressID, ok := addressIDFromPath(c)
	if !ok {
		return response.NotFound(c, "ADDRESS_NOT_FOUND", "Address not found.")
	}

	if err := h.uc.DeleteAddress(c.Request().Context(), userID, addressID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Address deleted successfully")
}

// SetDefault switches the default flag of one address.
func (h *AddressHandler) SetDefault(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	addressID, ok := addressIDFromPath(c)
	if !ok {
		return response.NotFound(c, "ADDRESS_NOT_FOUND", "Address not found.")
	}

	var req setDefaultRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetDefault(c.Request().Context(), userID, addressID, *req.IsDefault); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Default address updated successfully")
}

func toAddressInput(req addressRequest) usecase.AddressInput {
	return usecase.AddressInput{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
}

// addressIDFromPath parses the :id path parameter. An unparsable ID is
// indistinguishable from a missing address.
func addressIDFromPath(c echo.Context) (uuid.UUID, bool) {
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}

	return addressID, true
}
