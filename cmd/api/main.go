package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "heyday/internal/application/service"

	// Infrastructure Layer
	"heyday/internal/infrastructure/database"
	"heyday/internal/infrastructure/genai"
	"heyday/internal/infrastructure/localtimer"
	"heyday/internal/infrastructure/plantapi"
	"heyday/internal/infrastructure/push"
	"heyday/internal/infrastructure/scheduler"
	"heyday/internal/infrastructure/seedfile"

	// Interfaces Layer
	"heyday/internal/interfaces/api/handler"
	"heyday/internal/interfaces/api/router"

	// Packages
	"heyday/internal/pkg/config"
	appLogger "heyday/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, cronScheduler *scheduler.Scheduler, db *gorm.DB, cancelWatch context.CancelFunc, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the seed-file watcher and the reminder timers first.
	cancelWatch()
	log.Println("Stopping scheduler...")
	cronScheduler.Stop()
	log.Println("Scheduler stopped.")

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	// Close database connection after in-flight requests have drained.
	log.Println("Closing database connection...")
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// newPushGateway selects the delivery gateway named by PUSH_PROVIDER.
func newPushGateway(cfg *config.Config, log appLogger.Logger) (appService.PushGateway, error) {
	switch cfg.PushProvider {
	case config.PushProviderLine:
		return push.NewLineGateway(cfg.LineChannelSecret, cfg.LineChannelToken, log)
	case config.PushProviderLog:
		return push.NewLogGateway(log), nil
	default:
		return push.NewExpoClient(cfg.ExpoPushURL, cfg.ExpoAccessToken, log), nil
	}
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	cfg, err := config.Load()
	if err != nil {
		appLog.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		appLog.Error("Configuration incomplete", errors.New("JWT_SECRET must be set"))
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("Invalid timezone configuration", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Error("Failed to open the database", err)
		os.Exit(1)
	}
	plantRepo := database.NewPlantRepository(db)
	deviceRepo := database.NewDeviceTokenRepository(db)
	speciesRepo := database.NewSpeciesRepository(db)
	profileRepo := database.NewUserProfileRepository(db)
	recommendationRepo := database.NewRecommendationRepository(db)
	scanRepo := database.NewScanRepository(db)
	appLog.Info("Database and repositories initialized.")

	cronScheduler := scheduler.New(appLog, loc)

	gateway, err := newPushGateway(cfg, appLog)
	if err != nil {
		appLog.Error("Failed to initialize the push gateway", err)
		os.Exit(1)
	}
	plantAPI := plantapi.NewClient(cfg.PerenualBaseURL, cfg.PerenualAPIKey, appLog)
	generator := genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, appLog)

	// --- Application Services ---
	notifier := appService.NewReminderNotifier(plantRepo, deviceRepo, gateway, appLog)
	timer := localtimer.New(cronScheduler, notifier.DeliverReminder, cfg.NotificationsEnabled, appLog)

	catalogSvc, err := appService.NewCatalogService(speciesRepo, plantAPI, cfg.SpeciesSeedPath, appLog)
	if err != nil {
		appLog.Error("Failed to initialize the catalog service", err)
		os.Exit(1)
	}
	wateringSvc := appService.NewWateringService(plantRepo, timer, loc, time.Now, appLog)
	collectionSvc := appService.NewCollectionService(plantRepo, catalogSvc, timer, appLog)
	deviceSvc := appService.NewDeviceService(deviceRepo, appLog)
	profileSvc := appService.NewProfileService(profileRepo, appLog)
	recommendSvc := appService.NewRecommendService(profileRepo, recommendationRepo, catalogSvc, generator, time.Now, appLog)
	scanSvc := appService.NewScanService(scanRepo, cfg.ScanStorageDir, time.Now, appLog)
	appLog.Info("Application services initialized.")

	// --- Seed the species catalog ---
	if err := catalogSvc.SeedIfEmpty(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to seed the species catalog on startup", err)
	}

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	if cfg.WatchSpeciesSeed {
		err := seedfile.Watch(watchCtx, cfg.SpeciesSeedPath, appLog, func() {
			if err := catalogSvc.Reseed(context.Background()); err != nil {
				appLog.Error("Failed to reseed the species catalog", err)
			}
		})
		if err != nil {
			appLog.Error("Failed to watch the species seed file", err)
		}
	}

	// --- API Handlers ---
	healthHandler := handler.NewHealthHandler()
	deviceHandler := handler.NewDeviceHandler(deviceSvc, appLog)
	plantHandler := handler.NewPlantHandler(collectionSvc, wateringSvc, appLog)
	reminderHandler := handler.NewReminderHandler(wateringSvc, appLog)
	profileHandler := handler.NewProfileHandler(profileSvc, appLog)
	recommendationHandler := handler.NewRecommendationHandler(recommendSvc, cfg.RecommendLimit, appLog)
	scanHandler := handler.NewScanHandler(scanSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		HealthHandler:         healthHandler,
		DeviceHandler:         deviceHandler,
		PlantHandler:          plantHandler,
		ReminderHandler:       reminderHandler,
		ProfileHandler:        profileHandler,
		RecommendationHandler: recommendationHandler,
		ScanHandler:           scanHandler,
		JWTSecret:             cfg.JWTSecret,
		Logger:                appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, cronScheduler, db, cancelWatch, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
