package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          int
	MaxUploadSize int64

	Environment string
	LogLevel    string

	// ConvertPath is the primary ImageMagick binary.
	ConvertPath string
	// CWebPSearchPaths and CJpegSearchPaths override the default encoder
	// probe locations; empty keeps the built-in lists.
	CWebPSearchPaths []string
	CJpegSearchPaths []string

	DefaultQuality int
	ConvertTimeout time.Duration
	TempDir        string

	TracingEnabled  bool
	OTLPEndpoint    string
	TraceSampleRate float64
}

func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.MaxUploadSize = getEnvInt64("MAX_UPLOAD_SIZE", 100*1024*1024)

	cfg.ConvertPath = getEnvString("CONVERT_PATH", "convert")
	cfg.CWebPSearchPaths = getEnvList("CWEBP_SEARCH_PATHS")
	cfg.CJpegSearchPaths = getEnvList("CJPEG_SEARCH_PATHS")

	cfg.DefaultQuality = getEnvInt("DEFAULT_QUALITY", 85)
	cfg.ConvertTimeout, err = getEnvDuration("CONVERT_TIMEOUT", "60s")
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERT_TIMEOUT: %w", err)
	}
	cfg.TempDir = getEnvString("TEMP_DIR", os.TempDir())

	cfg.Environment = getEnvString("ENVIRONMENT", "development")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	cfg.TracingEnabled = getEnvBool("TRACING_ENABLED", false)
	cfg.OTLPEndpoint = getEnvString("OTLP_ENDPOINT", "localhost:4317")
	cfg.TraceSampleRate = getEnvFloat("TRACE_SAMPLE_RATE", 1.0)

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ":") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return time.ParseDuration(value)
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.MaxUploadSize < 1 {
		return fmt.Errorf("invalid max upload size: %d", c.MaxUploadSize)
	}

	if c.ConvertPath == "" {
		return fmt.Errorf("convert path must not be empty")
	}

	if c.DefaultQuality < 1 || c.DefaultQuality > 100 {
		return fmt.Errorf("invalid default quality: %d", c.DefaultQuality)
	}

	return nil
}
