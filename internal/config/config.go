// ABOUTME: Configuration loader for the cryptoqa CLI and dev API
// ABOUTME: Loads settings from environment variables (optionally a .env file) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

const DefaultAPIURL = "http://localhost:4000/api/v1"

type Config struct {
	// Auth API
	APIURL      string
	HTTPTimeout time.Duration

	// Local state
	ConfigDir    string
	SessionStore string // file, redis, memory (default: file)

	// Redis session store (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Google sign-in
	GoogleClientID string

	// Dev Auth API
	DevPort            string
	DevJWTSecret       string
	DevRateLimit       int // requests per minute per client on /user/* (default: 30)
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory (or the file named by CRYPTOQA_ENV_FILE) is applied first; variables
// already set in the environment win.
func Load() (*Config, error) {
	envFile := getEnv("CRYPTOQA_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg := &Config{
		APIURL:      strings.TrimRight(getEnv("CRYPTOQA_API_URL", DefaultAPIURL), "/"),
		HTTPTimeout: getEnvDuration("CRYPTOQA_HTTP_TIMEOUT", 30*time.Second),

		ConfigDir:    getEnv("CRYPTOQA_CONFIG_DIR", DefaultConfigDir()),
		SessionStore: strings.ToLower(getEnv("CRYPTOQA_SESSION_STORE", StoreFile)),

		RedisAddr:     getEnv("CRYPTOQA_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("CRYPTOQA_REDIS_PASSWORD"),
		RedisDB:       getEnvInt("CRYPTOQA_REDIS_DB", 0),

		GoogleClientID: os.Getenv("CRYPTOQA_GOOGLE_CLIENT_ID"),

		DevPort:            getEnv("CRYPTOQA_DEV_PORT", "4000"),
		DevJWTSecret:       getEnv("CRYPTOQA_DEV_JWT_SECRET", "cryptoqa-dev-secret"),
		DevRateLimit:       getEnvInt("CRYPTOQA_DEV_RATE_LIMIT", 30),
		CORSAllowedOrigins: getEnvStringList("CRYPTOQA_CORS_ALLOWED_ORIGINS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a closed set of legal settings
func (c *Config) Validate() error {
	switch c.SessionStore {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("CRYPTOQA_SESSION_STORE must be one of file, redis, memory, got %q", c.SessionStore)
	}
	if c.SessionStore == StoreFile && c.ConfigDir == "" {
		return fmt.Errorf("CRYPTOQA_CONFIG_DIR is required for the file session store")
	}
	if c.DevRateLimit < 1 || c.DevRateLimit > 10000 {
		return fmt.Errorf("CRYPTOQA_DEV_RATE_LIMIT must be between 1 and 10000, got %d", c.DevRateLimit)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("CRYPTOQA_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cryptoqa")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cryptoqa")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
