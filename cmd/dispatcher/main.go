package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "heyday/internal/application/service"

	// Domain Layer
	"heyday/internal/domain/caldate"

	// Infrastructure Layer
	"heyday/internal/infrastructure/database"
	"heyday/internal/infrastructure/push"
	"heyday/internal/infrastructure/scheduler"

	// Packages
	"heyday/internal/pkg/config"
	appLogger "heyday/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

// cycleTimeout bounds one due cycle; a wedged push call must not stall
// the next scheduled run.
const cycleTimeout = 5 * time.Minute

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

// runCycle executes one due cycle for today in loc.
func runCycle(dispatchSvc appService.DispatchService, loc *time.Location, appLog appLogger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	today := caldate.Today(loc)
	report, err := dispatchSvc.RunDueCycle(ctx, today)
	if err != nil {
		appLog.Error(fmt.Sprintf("Due cycle at %s failed", today), err)
		return err
	}
	appLog.Info(fmt.Sprintf("Due cycle at %s: matched=%d notified=%d skipped_users=%d advanced=%d",
		today, report.Matched, report.Notified, report.SkippedUsers, report.Advanced))
	return nil
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()

	cfg, err := config.Load()
	if err != nil {
		appLog.Error("Failed to load configuration", err)
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

	gateway, err := newPushGateway(cfg, appLog)
	if err != nil {
		appLog.Error("Failed to initialize the push gateway", err)
		os.Exit(1)
	}

	dispatchSvc := appService.NewDispatchService(plantRepo, deviceRepo, gateway, appLog)

	// One-shot mode: no schedule configured, run a single cycle and exit.
	// Suits an external cron or a container job runner.
	if cfg.DispatchCron == "" {
		cycleErr := runCycle(dispatchSvc, loc, appLog)
		if err := database.Close(db); err != nil {
			appLog.Error("Failed to close the database", err)
		}
		if cycleErr != nil {
			os.Exit(1)
		}
		return
	}

	// Daemon mode: run a cycle on the configured cron schedule.
	cronScheduler := scheduler.New(appLog, loc)
	if _, err := cronScheduler.AddJob(cfg.DispatchCron, func() {
		// The cycle logs its own outcome; the daemon keeps going.
		_ = runCycle(dispatchSvc, loc, appLog)
	}); err != nil {
		appLog.Error(fmt.Sprintf("Invalid DISPATCH_CRON %q", cfg.DispatchCron), err)
		os.Exit(1)
	}
	appLog.Info(fmt.Sprintf("Dispatcher daemon started with schedule %q.", cfg.DispatchCron))

	// Wait for the interrupt signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	cronScheduler.Stop()
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}
	log.Println("Dispatcher exiting")
}
