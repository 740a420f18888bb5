package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AddressHandler holds dependencies for address handlers.
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

// ListAddresses returns the caller's addresses, default first.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	addresses, err := h.uc.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAddressResponses(addresses), "")
}

type createAddressRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	AddressLine string `json:"address_line" validate:"required"`
	City        string `json:"city" validate:"required"`
	Province    string `json:"province" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}

// CreateAddress adds an address to the caller's collection.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req createAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address input")
	}

	address, err := h.uc.CreateAddress(c.Request().Context(), &usecase.CreateAddressInput{
		UserID:      userID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		IsDefault:   req.IsDefault,
		IPAddress:   c.RealIP(),
		RequestID:   deliverycontext.GetRequestID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAddressResponse(address), "Address created successfully")
}

type updateAddressRequest struct {
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postal_code"`
}

// UpdateAddress applies a partial update to an owned address. The default
// flag is not part of this payload.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address id")
	}

	var req updateAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	address, err := h.uc.UpdateAddress(c.Request().Context(), &usecase.UpdateAddressInput{
		UserID:      userID,
		AddressID:   addressID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		IPAddress:   c.RealIP(),
		RequestID:   deliverycontext.GetRequestID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAddressResponse(address), "Address updated successfully")
}

// SetDefaultAddress promotes an owned address to the single default.
func (h *AddressHandler) SetDefaultAddress(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid address id")
	}

	address, err := h.uc.SetDefaultAddress(c.Request().Context(), &usecase.SetDefaultAddressInput{
		UserID:    userID,
		AddressID: addressID,
		IPAddress: c.RealIP(),
		RequestID: deliverycontext.GetRequestID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAddressResponse(address), "Default address set successfully")
}
