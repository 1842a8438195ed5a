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

// ReminderHandler handles the local-reminder maintenance endpoints.
type ReminderHandler struct {
	wateringService service.WateringService
	log             logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(wateringService service.WateringService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		wateringService: wateringService,
		log:             log,
	}
}

// Resync re-arms reminders for the caller's future-dated plants.
// Clients call it when the app returns to the foreground, optionally
// naming the plants currently on screen.
func (h *ReminderHandler) Resync(c echo.Context) error {
	var req dto.ResyncRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}

	resp, err := h.wateringService.ResyncAllReminders(c.Request().Context(), middleware.UserID(c), req.PlantIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Permission reports the notification capability flag.
func (h *ReminderHandler) Permission(c echo.Context) error {
	granted := h.wateringService.PermissionGranted(c.Request().Context())
	return c.JSON(http.StatusOK, dto.PermissionResponse{Granted: granted})
}
