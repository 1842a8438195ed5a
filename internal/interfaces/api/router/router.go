package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"heyday/internal/interfaces/api/handler"
	appMiddleware "heyday/internal/interfaces/api/middleware"
	"heyday/internal/pkg/logger"
)

// Config holds the dependencies for the router.
type Config struct {
	HealthHandler         *handler.HealthHandler
	DeviceHandler         *handler.DeviceHandler
	PlantHandler          *handler.PlantHandler
	ReminderHandler       *handler.ReminderHandler
	ProfileHandler        *handler.ProfileHandler
	RecommendationHandler *handler.RecommendationHandler
	ScanHandler           *handler.ScanHandler
	JWTSecret             string
	Logger                logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	e.GET("/healthz", cfg.HealthHandler.Check)

	// Authenticated API
	api := e.Group("/api/v1", appMiddleware.JWTAuth(cfg.JWTSecret, cfg.Logger))

	api.POST("/devices", cfg.DeviceHandler.Register)
	api.DELETE("/devices/:token", cfg.DeviceHandler.Deactivate)

	api.GET("/plants", cfg.PlantHandler.List)
	api.POST("/plants", cfg.PlantHandler.Create)
	api.GET("/plants/:id", cfg.PlantHandler.Get)
	api.PATCH("/plants/:id", cfg.PlantHandler.Update)
	api.DELETE("/plants/:id", cfg.PlantHandler.Delete)
	api.POST("/plants/:id/water", cfg.PlantHandler.Water)
	api.PUT("/plants/:id/interval", cfg.PlantHandler.SetInterval)

	api.POST("/reminders/resync", cfg.ReminderHandler.Resync)
	api.GET("/reminders/permission", cfg.ReminderHandler.Permission)

	api.GET("/profile", cfg.ProfileHandler.Get)
	api.PUT("/profile", cfg.ProfileHandler.Put)

	api.GET("/recommendations", cfg.RecommendationHandler.List)

	api.POST("/scans", cfg.ScanHandler.Create)
	api.GET("/scans", cfg.ScanHandler.List)
	api.GET("/scans/:id", cfg.ScanHandler.Get)
	api.POST("/scans/:id/artifacts", cfg.ScanHandler.UploadArtifact)
	api.POST("/scans/:id/process", cfg.ScanHandler.StartProcessing)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
