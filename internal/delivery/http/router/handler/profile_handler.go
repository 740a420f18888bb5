package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
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

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(profile), "")
}

type upsertProfileRequest struct {
	Gender      *string    `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Avatar      *string    `json:"avatar"`
}

// UpsertProfile creates the caller's profile on first use and updates it
// afterwards. Answers 201 on create, 200 on update.
func (h *ProfileHandler) UpsertProfile(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	input := &usecase.UpsertProfileInput{
		UserID:      userID,
		DateOfBirth: req.DateOfBirth,
		AvatarKey:   req.Avatar,
		IPAddress:   c.RealIP(),
		RequestID:   deliverycontext.GetRequestID(c),
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		input.Gender = &gender
	}

	output, err := h.uc.UpsertProfile(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	message := "Profile updated successfully"
	if output.Created {
		status = http.StatusCreated
		message = "Profile created successfully"
	}

	return response.Success(c, status, toProfileResponse(output.Profile), message)
}
