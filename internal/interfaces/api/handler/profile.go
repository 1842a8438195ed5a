package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"heyday/internal/application/dto"
	"heyday/internal/application/service"
	"heyday/internal/interfaces/api/middleware"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// ProfileHandler handles the user's location-context endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
	log            logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		log:            log,
	}
}

// Get returns the caller's stored profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Put writes the caller's profile row.
func (h *ProfileHandler) Put(c echo.Context) error {
	var req dto.UpsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	profile, err := h.profileService.UpsertProfile(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
