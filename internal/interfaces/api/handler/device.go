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

// DeviceHandler handles push-token registration endpoints.
type DeviceHandler struct {
	deviceService service.DeviceService
	log           logger.Logger
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(deviceService service.DeviceService, log logger.Logger) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
		log:           log,
	}
}

// Register stores or reactivates a push token for the caller.
func (h *DeviceHandler) Register(c echo.Context) error {
	var req dto.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	device, err := h.deviceService.RegisterDevice(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, device)
}

// Deactivate stops deliveries to the token. Unknown tokens are a no-op,
// so the endpoint is safe to call from a signed-out device.
func (h *DeviceHandler) Deactivate(c echo.Context) error {
	if err := h.deviceService.DeactivateDevice(c.Request().Context(), middleware.UserID(c), c.Param("token")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
