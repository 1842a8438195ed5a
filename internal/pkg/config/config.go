// Package config loads typed runtime settings from the environment.
// main loads .env via godotenv/autoload before calling Load; nothing in
// this package keeps global state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Push provider names accepted in PUSH_PROVIDER.
const (
	PushProviderExpo = "expo"
	PushProviderLine = "line"
	PushProviderLog  = "log"
)

// Config holds every runtime setting for the api and dispatcher binaries.
type Config struct {
	Port        int
	DatabaseURL string

	// Timezone is the IANA zone used for "today" and the 09:00 reminder
	// fire time. Empty means the process-local zone.
	Timezone string

	// NotificationsEnabled is the local-notification capability flag.
	// When false every scheduling operation is a logged no-op.
	NotificationsEnabled bool

	PushProvider    string
	ExpoPushURL     string
	ExpoAccessToken string

	LineChannelSecret string
	LineChannelToken  string

	PerenualBaseURL string
	PerenualAPIKey  string

	GeminiBaseURL string
	GeminiAPIKey  string
	GeminiModel   string

	JWTSecret string

	SpeciesSeedPath  string
	WatchSpeciesSeed bool

	ScanStorageDir string

	// DispatchCron is the daemon schedule for the dispatcher binary.
	// Empty means run a single due cycle and exit.
	DispatchCron string

	RecommendLimit int
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 8080,
		DatabaseURL:          getEnv("DATABASE_URL", "heyday.db"),
		Timezone:             os.Getenv("TIMEZONE"),
		NotificationsEnabled: true,
		PushProvider:         getEnv("PUSH_PROVIDER", PushProviderExpo),
		ExpoPushURL:          getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		ExpoAccessToken:      os.Getenv("EXPO_ACCESS_TOKEN"),
		LineChannelSecret:    os.Getenv("CHANNEL_SECRET"),
		LineChannelToken:     os.Getenv("CHANNEL_ACCESS_TOKEN"),
		PerenualBaseURL:      getEnv("PERENUAL_BASE_URL", "https://perenual.com/api"),
		PerenualAPIKey:       os.Getenv("PERENUAL_API_KEY"),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SpeciesSeedPath:      getEnv("SPECIES_SEED_PATH", "configs/species.yaml"),
		ScanStorageDir:       getEnv("SCAN_STORAGE_DIR", "data/scans"),
		DispatchCron:         os.Getenv("DISPATCH_CRON"),
		RecommendLimit:       5,
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.NotificationsEnabled, err = getEnvBool("NOTIFICATIONS_ENABLED", cfg.NotificationsEnabled); err != nil {
		return nil, err
	}
	if cfg.WatchSpeciesSeed, err = getEnvBool("SPECIES_SEED_WATCH", cfg.WatchSpeciesSeed); err != nil {
		return nil, err
	}
	if cfg.RecommendLimit, err = getEnvInt("RECOMMEND_LIMIT", cfg.RecommendLimit); err != nil {
		return nil, err
	}

	switch cfg.PushProvider {
	case PushProviderExpo, PushProviderLine, PushProviderLog:
	default:
		return nil, fmt.Errorf("config: unknown PUSH_PROVIDER %q", cfg.PushProvider)
	}

	return cfg, nil
}

// Location resolves the configured timezone, defaulting to the process zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, v)
	}
	return b, nil
}
