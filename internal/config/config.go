// Package config loads server configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all server settings
type Config struct {
	Host string
	Port int

	StorageType string
	RedisURL    string

	// TickInterval is the countdown granularity; one second in production
	TickInterval time.Duration

	// ProblemsPath optionally points at a JSON problem file loaded on
	// top of the built-in catalog
	ProblemsPath string

	// EvalTimeout bounds a single submission evaluation
	EvalTimeout time.Duration

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:            getEnv("CODERELAY_HOST", ""),
		Port:            getEnvAsInt("CODERELAY_PORT", 3001),
		StorageType:     getEnv("CODERELAY_STORAGE", StorageMemory),
		RedisURL:        getEnv("CODERELAY_REDIS_URL", "redis://localhost:6379"),
		TickInterval:    getEnvAsDuration("CODERELAY_TICK_INTERVAL", time.Second),
		ProblemsPath:    getEnv("CODERELAY_PROBLEMS_PATH", ""),
		EvalTimeout:     getEnvAsDuration("CODERELAY_EVAL_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getEnvAsDuration("CODERELAY_SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.StorageType != StorageMemory && c.StorageType != StorageRedis {
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
