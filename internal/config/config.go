package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	LogLevel     string

	// DBDSN selects Postgres storage when set; records live in memory otherwise.
	DBDSN      string
	DBMaxConns int
	// RedisAddr selects the redis attempt limiter when set.
	RedisAddr string

	AdminAccessKey   string
	JWTSecret        string
	AdminSessionTTL  time.Duration
	AdminMaxAttempts int
	AdminLockout     time.Duration
	BcryptCost       int

	NotificationPhone     string
	NotificationSendDelay time.Duration

	StatusPolicy lifecycle.Policy

	StoragePath    string
	MaxUploadBytes int64
	CatalogPath    string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	// The admin gate cannot work without its shared key and a signing secret
	cfg.AdminAccessKey = os.Getenv("ADMIN_ACCESS_KEY")
	if cfg.AdminAccessKey == "" {
		return nil, fmt.Errorf("ADMIN_ACCESS_KEY is required")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.AdminSessionTTL, err = getEnvAsDuration("ADMIN_SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AdminMaxAttempts, err = getEnvAsInt("ADMIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.AdminLockout, err = getEnvAsDuration("ADMIN_LOCKOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}

	cfg.NotificationPhone = getEnv("NOTIFICATION_PHONE", "+1 (809) 444-8800")
	if cfg.NotificationSendDelay, err = getEnvAsDuration("NOTIFICATION_SEND_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}

	if cfg.StatusPolicy, err = lifecycle.ParsePolicy(getEnv("STATUS_POLICY", "open")); err != nil {
		return nil, fmt.Errorf("invalid STATUS_POLICY: %w", err)
	}

	cfg.StoragePath = getEnv("STORAGE_PATH", "./data/uploads")
	maxUpload, err := getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	cfg.MaxUploadBytes = int64(maxUpload)
	cfg.CatalogPath = getEnv("CATALOG_PATH", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values such as "30s" or "24h".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
