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

// PlantHandler handles the plant collection and watering endpoints.
type PlantHandler struct {
	collectionService service.CollectionService
	wateringService   service.WateringService
	log               logger.Logger
}

// NewPlantHandler creates a new PlantHandler.
func NewPlantHandler(
	collectionService service.CollectionService,
	wateringService service.WateringService,
	log logger.Logger,
) *PlantHandler {
	return &PlantHandler{
		collectionService: collectionService,
		wateringService:   wateringService,
		log:               log,
	}
}

// List returns the caller's plant collection, oldest first.
func (h *PlantHandler) List(c echo.Context) error {
	plants, err := h.collectionService.ListPlants(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, plants)
}

// Create adds a plant to the caller's collection.
func (h *PlantHandler) Create(c echo.Context) error {
	var req dto.AddPlantRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	plant, err := h.collectionService.AddPlant(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, plant)
}

// Get returns one plant, ownership-checked.
func (h *PlantHandler) Get(c echo.Context) error {
	plant, err := h.collectionService.GetPlant(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, plant)
}

// Update edits a plant's display fields.
func (h *PlantHandler) Update(c echo.Context) error {
	var req dto.UpdatePlantRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	plant, err := h.collectionService.UpdatePlant(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, plant)
}

// Delete removes a plant and cancels its pending reminder.
func (h *PlantHandler) Delete(c echo.Context) error {
	if err := h.collectionService.RemovePlant(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Water logs a watering for today and re-arms the plant's reminder.
// On failure the prior schedule is left intact, so the client may retry.
func (h *PlantHandler) Water(c echo.Context) error {
	resp, err := h.wateringService.WaterPlantNow(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SetInterval overrides the plant's watering cadence. days == 0 clears
// the override so the species default applies again.
func (h *PlantHandler) SetInterval(c echo.Context) error {
	var req dto.SetIntervalRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	plant, err := h.wateringService.SetWateringInterval(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, plant)
}
