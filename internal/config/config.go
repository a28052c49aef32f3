package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr      = ":8080"
	defaultDatabaseURL     = "mangavault.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "24h"
	defaultStorageBackend  = "local"
	defaultUploadsDir      = "./uploads"
	defaultStaticURLBase   = "/static/uploads"
	defaultIdentitySource  = "local"
	defaultIdentityTimeout = "5s"
)

// Config holds the runtime configuration for the API server.
// Values come from the environment; a .env file is loaded first when present.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// StorageBackend selects where uploaded binaries go: "local" or "gcs".
	StorageBackend string
	UploadsDir     string
	StaticURLBase  string
	GCSBucket      string

	// IdentitySource selects the identity provider: "local" (accounts table)
	// or "remote" (Clerk-style HTTP API).
	IdentitySource    string
	IdentityAPIBase   string
	IdentitySecretKey string
	IdentityTimeout   time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", defaultStorageBackend))
	cfg.UploadsDir = getEnv("UPLOADS_DIR", defaultUploadsDir)
	cfg.StaticURLBase = getEnv("STATIC_URL_BASE", defaultStaticURLBase)
	cfg.GCSBucket = strings.TrimSpace(os.Getenv("GCS_BUCKET"))

	cfg.IdentitySource = strings.ToLower(getEnv("IDENTITY_SOURCE", defaultIdentitySource))
	cfg.IdentityAPIBase = strings.TrimSpace(getEnv("IDENTITY_API_BASE", "https://api.clerk.com"))
	cfg.IdentitySecretKey = strings.TrimSpace(os.Getenv("IDENTITY_SECRET_KEY"))
	cfg.IdentityTimeout, err = parseDurationEnv("IDENTITY_TIMEOUT", defaultIdentityTimeout)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	switch cfg.StorageBackend {
	case "local":
		if cfg.UploadsDir == "" {
			return fmt.Errorf("UPLOADS_DIR must not be empty")
		}
	case "gcs":
		if cfg.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET must be set when STORAGE_BACKEND=gcs")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: local, gcs")
	}
	switch cfg.IdentitySource {
	case "local":
	case "remote":
		if cfg.IdentitySecretKey == "" {
			return fmt.Errorf("IDENTITY_SECRET_KEY must be set when IDENTITY_SOURCE=remote")
		}
	default:
		return fmt.Errorf("IDENTITY_SOURCE must be one of: local, remote")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
