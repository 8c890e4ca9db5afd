package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// AWS
	Region string

	// Logging
	LogFile    string
	LogLevel   slog.Level
	Structured bool
}

// Load reads configuration from environment variables. Defaults match the
// documented server behavior: us-east-1, INFO, human-readable stderr logs
// and no log file.
func Load() Config {
	return Config{
		Region: getEnv("AWS_REGION", "us-east-1"),

		LogFile:    getEnv("BEDROCK_KB_LOG_FILE", ""),
		LogLevel:   parseLogLevel(getEnv("FASTMCP_LOG_LEVEL", "INFO")),
		Structured: getEnv("FASTMCP_STRUCTURED_LOG", "false") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
