package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"heyday/internal/application/dto"
	"heyday/internal/application/service"
	"heyday/internal/interfaces/api/middleware"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// ScanHandler handles the room-scan session endpoints.
type ScanHandler struct {
	scanService service.ScanService
	log         logger.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService, log logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		log:         log,
	}
}

// Create opens a new scan session.
func (h *ScanHandler) Create(c echo.Context) error {
	var req dto.CreateScanRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	session, err := h.scanService.CreateSession(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

// List returns the caller's sessions, newest first.
func (h *ScanHandler) List(c echo.Context) error {
	sessions, err := h.scanService.ListSessions(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// Get returns one session with its artifacts and jobs.
func (h *ScanHandler) Get(c echo.Context) error {
	session, err := h.scanService.GetSession(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// UploadArtifact stores one multipart chunk of a scan artifact. The
// binary payload is the "file" part; chunk bookkeeping rides in the
// other form fields. A request without chunk fields is a single-part
// upload and finalizes immediately.
func (h *ScanHandler) UploadArtifact(c echo.Context) error {
	var req dto.ArtifactChunkRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fmt.Errorf("%w: missing file part", appErrors.ErrInvalidArgument))
	}
	src, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file part", err)
		return fail(c, fmt.Errorf("%w: unreadable file part", appErrors.ErrInvalidArgument))
	}
	defer src.Close()
	req.FileName = fileHeader.Filename
	req.ContentType = fileHeader.Header.Get("Content-Type")

	resp, err := h.scanService.SaveArtifactChunk(c.Request().Context(), middleware.UserID(c), c.Param("id"), req, src)
	if err != nil {
		return fail(c, err)
	}

	// Intermediate chunks acknowledge receipt; the final one carries
	// the artifact row.
	status := http.StatusAccepted
	if resp.Completed {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}

// StartProcessing enqueues (or reuses) the session's processing job.
func (h *ScanHandler) StartProcessing(c echo.Context) error {
	var req dto.StartProcessingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, appErrors.ErrInvalidArgument)
	}
	resp, err := h.scanService.StartProcessing(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.AutoComplete)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusAccepted, resp)
}
