package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverJSON     = "json"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Cron     CronConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	FrontendURL        string
	CORSAllowedOrigins []string
}

type StorageConfig struct {
	Driver            string
	DataDir           string
	SignatureDir      string
	SignatureBaseURL  string
	SignatureMaxWidth int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

type CronConfig struct {
	OpenShiftSweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")
	origins := getEnvSlice("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{frontendURL}
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		FrontendURL:        frontendURL,
		CORSAllowedOrigins: origins,
	}

	// Storage configuration
	maxWidth, err := strconv.Atoi(getEnv("SIGNATURE_MAX_WIDTH", "600"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIGNATURE_MAX_WIDTH: %w", err)
	}

	config.Storage = StorageConfig{
		Driver:            strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverJSON)),
		DataDir:           getEnv("DATA_DIR", "./data"),
		SignatureDir:      getEnv("SIGNATURE_DIR", "./data/signatures"),
		SignatureBaseURL:  getEnv("SIGNATURE_BASE_URL", "/api/v1/signatures"),
		SignatureMaxWidth: maxWidth,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil || maxConns < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %q", getEnv("DB_MAX_CONNS", ""))
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Cron configuration
	sweep, err := time.ParseDuration(getEnv("OPEN_SHIFT_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPEN_SHIFT_SWEEP_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{OpenShiftSweepInterval: sweep}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY is required"))
	}
	if c.JWT.AccessExpiration <= 0 {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive"))
	}
	if c.Cron.OpenShiftSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("OPEN_SHIFT_SWEEP_INTERVAL must be positive"))
	}
	if c.Storage.SignatureMaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("SIGNATURE_MAX_WIDTH must be positive"))
	}

	switch c.Storage.Driver {
	case StorageDriverJSON:
		if c.Storage.DataDir == "" {
			errs = append(errs, fmt.Errorf("DATA_DIR is required with the json storage driver"))
		}
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			errs = append(errs, fmt.Errorf("DB_PASSWORD is required with the postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverJSON, StorageDriverPostgres, c.Storage.Driver))
	}

	return errors.Join(errs...)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
