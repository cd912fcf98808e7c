package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Planning PlanningConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// PlanningConfig holds solve-run defaults. Request fields override
// horizon and the constraint switches per run; the rest are operator
// policy and only change via environment.
type PlanningConfig struct {
	DefaultHorizonDays int
	BuildAheadDays     int
	ShortagePolicy     string
	MaxUploadBytes     int64
}

// Valid shortage policies
const (
	ShortagePolicyZeroFloor = "zero_floor"
	ShortagePolicyBacklog   = "backlog"
)

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "solver"),
		},
		Planning: PlanningConfig{
			DefaultHorizonDays: getEnvAsInt("PLAN_DEFAULT_HORIZON_DAYS", 30),
			BuildAheadDays:     getEnvAsInt("PLAN_BUILD_AHEAD_DAYS", 15),
			ShortagePolicy:     getEnv("PLAN_SHORTAGE_POLICY", ShortagePolicyZeroFloor),
			MaxUploadBytes:     getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
		},
	}

	switch cfg.Planning.ShortagePolicy {
	case ShortagePolicyZeroFloor, ShortagePolicyBacklog:
	default:
		return nil, fmt.Errorf("invalid PLAN_SHORTAGE_POLICY %q (expected %s or %s)",
			cfg.Planning.ShortagePolicy, ShortagePolicyZeroFloor, ShortagePolicyBacklog)
	}
	if cfg.Planning.DefaultHorizonDays < 1 {
		return nil, fmt.Errorf("PLAN_DEFAULT_HORIZON_DAYS must be at least 1, got %d", cfg.Planning.DefaultHorizonDays)
	}
	if cfg.Planning.BuildAheadDays < 0 {
		return nil, fmt.Errorf("PLAN_BUILD_AHEAD_DAYS cannot be negative, got %d", cfg.Planning.BuildAheadDays)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
