package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment modes
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config содержит конфигурацию сервера, читаемую из окружения
type Config struct {
	// HTTP server
	Address string

	// Persistence
	DatabasePath string

	// Token signing
	JWTSecret string

	// Application settings
	Environment string
	LogLevel    string

	// Transport-level rate limiting
	RateLimitGeneral       int
	RateLimitGeneralWindow time.Duration
	RateLimitAuth          int
	RateLimitAuthWindow    time.Duration
}

// Load reads configuration from environment variables.
// A .env file is loaded first when present (not required in production).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Address:                getEnv("ADDRESS", ":"+getEnv("PORT", "8080")),
		DatabasePath:           getEnv("DATABASE_PATH", "./gonotes.db"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		Environment:            getEnv("APP_ENV", EnvDevelopment),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RateLimitGeneral:       getEnvAsInt("RATE_LIMIT_GENERAL", 100),
		RateLimitGeneralWindow: time.Duration(getEnvAsInt("RATE_LIMIT_GENERAL_WINDOW_MIN", 15)) * time.Minute,
		RateLimitAuth:          getEnvAsInt("RATE_LIMIT_AUTH", 5),
		RateLimitAuthWindow:    time.Duration(getEnvAsInt("RATE_LIMIT_AUTH_WINDOW_MIN", 15)) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// IsTest reports whether the server runs in test environment mode.
// Rate limiting at the transport boundary is disabled in this mode.
func (c *Config) IsTest() bool {
	return c.Environment == EnvTest
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Helper functions to read environment variables

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
