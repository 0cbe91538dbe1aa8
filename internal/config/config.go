package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Detection DetectionConfig
	Response  ResponseConfig
	Metrics   MetricsConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// DetectionConfig contains anomaly detection tunables
type DetectionConfig struct {
	// Threshold is the anomaly score above which a threat is materialized.
	Threshold float64
	// MaxUploadBytes caps the file-scan upload size.
	MaxUploadBytes int64
}

// ResponseConfig contains the simulated incident-response delays and the
// worker pool size. Each delay models the latency of an external
// mitigation system.
type ResponseConfig struct {
	Workers             int
	AutoResponseDelay   time.Duration
	MitigationStepDelay time.Duration
	AutoResolveDelay    time.Duration
	PlaybookDelay       time.Duration
}

// MetricsConfig contains metrics exporter configuration
type MetricsConfig struct {
	Enabled         bool
	RefreshSchedule string // cron spec for the gauge refresher
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Detection: DetectionConfig{
			Threshold:      getEnvAsFloat("DETECTION_THRESHOLD", 0.6),
			MaxUploadBytes: int64(getEnvAsInt("SCAN_MAX_UPLOAD_MB", 100)) << 20,
		},
		Response: ResponseConfig{
			Workers:             getEnvAsInt("RESPONSE_WORKERS", 8),
			AutoResponseDelay:   getEnvAsDuration("RESPONSE_AUTO_DELAY", time.Second),
			MitigationStepDelay: getEnvAsDuration("RESPONSE_STEP_DELAY", 500*time.Millisecond),
			AutoResolveDelay:    getEnvAsDuration("RESPONSE_RESOLVE_DELAY", 2*time.Second),
			PlaybookDelay:       getEnvAsDuration("RESPONSE_PLAYBOOK_DELAY", 3*time.Second),
		},
		Metrics: MetricsConfig{
			Enabled:         getEnvAsBool("METRICS_ENABLED", true),
			RefreshSchedule: getEnv("METRICS_REFRESH_SCHEDULE", "@every 30s"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Detection.Threshold < 0 || c.Detection.Threshold > 1 {
		return fmt.Errorf("detection threshold must be in [0,1], got %v", c.Detection.Threshold)
	}

	if c.Response.Workers < 1 {
		return fmt.Errorf("response worker count must be positive, got %d", c.Response.Workers)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
