package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"heyday/internal/application/service"
	"heyday/internal/interfaces/api/middleware"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// RecommendationHandler handles the plant-recommendation endpoint.
type RecommendationHandler struct {
	recommendService service.RecommendService
	defaultLimit     int
	log              logger.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
// defaultLimit caps the suggestion count when the request names none.
func NewRecommendationHandler(recommendService service.RecommendService, defaultLimit int, log logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendService: recommendService,
		defaultLimit:     defaultLimit,
		log:              log,
	}
}

// List suggests plants for the caller's stored location. The optional
// "limit" query parameter bounds the suggestion count.
func (h *RecommendationHandler) List(c echo.Context) error {
	limit := h.defaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fail(c, appErrors.ErrInvalidArgument)
		}
		limit = n
	}

	resp, err := h.recommendService.ForLocation(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
