// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// Environments.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the tool.
type Config struct {
	AppEnv         string
	LogLevel       logging.Level
	DataDir        string
	TempDir        string
	FPLBaseURL     string
	FPLTimeout     time.Duration
	FPLMaxRetries  int
	PullMaxWorkers int
	CacheTTL       time.Duration
	UpdateCommand  string
	DiscordTimeout time.Duration
	OpenViewer     bool
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	fplTimeout, err := getEnvAsDuration("FPL_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must not be negative")
	}

	pullMaxWorkers, err := getEnvAsInt("PULL_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PULL_MAX_WORKERS: %w", err)
	}
	if pullMaxWorkers < 1 {
		return Config{}, fmt.Errorf("PULL_MAX_WORKERS must be at least 1")
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	discordTimeout, err := getEnvAsDuration("DISCORD_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse DISCORD_TIMEOUT: %w", err)
	}

	openViewer, err := strconv.ParseBool(getEnv("OPEN_VIEWER", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPEN_VIEWER: %w", err)
	}

	return Config{
		AppEnv:         appEnv,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DataDir:        strings.TrimSpace(getEnv("DATA_DIR", ".")),
		TempDir:        strings.TrimSpace(getEnv("TEMP_DIR", os.TempDir())),
		FPLBaseURL:     strings.TrimSpace(getEnv("FPL_BASE_URL", "https://draft.premierleague.com/api")),
		FPLTimeout:     fplTimeout,
		FPLMaxRetries:  fplMaxRetries,
		PullMaxWorkers: pullMaxWorkers,
		CacheTTL:       cacheTTL,
		UpdateCommand:  strings.TrimSpace(getEnv("UPDATE_COMMAND", "")),
		DiscordTimeout: discordTimeout,
		OpenViewer:     openViewer,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
