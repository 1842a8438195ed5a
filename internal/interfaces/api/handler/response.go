package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	appErrors "heyday/internal/pkg/errors"
)

// errorBody is the JSON envelope every failed request carries.
type errorBody struct {
	Error string `json:"error"`
}

// httpStatus maps an application error onto its response status.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrPlantNotFound),
		errors.Is(err, appErrors.ErrSpeciesNotFound),
		errors.Is(err, appErrors.ErrSessionNotFound),
		errors.Is(err, appErrors.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, appErrors.ErrInvalidInterval),
		errors.Is(err, appErrors.ErrInvalidArgument),
		errors.Is(err, appErrors.ErrUploadCorrupt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail renders err as the request's JSON error response. Internal
// errors are masked with a generic message; the services already logged
// the detail.
func fail(c echo.Context, err error) error {
	status := httpStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = appErrors.ErrInternalServer.Error()
	}
	return c.JSON(status, errorBody{Error: msg})
}
