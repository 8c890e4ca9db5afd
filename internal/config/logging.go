package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger builds the server logger. Stdout belongs to the MCP
// transport, so logs go to stderr (text, or JSON when structured is set)
// and optionally to a JSON log file. Every record passes through the
// redaction middleware before reaching a handler.
// Returns the logger and a cleanup function to close the file.
func SetupLogger(cfg Config) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var stderrHandler slog.Handler
	if cfg.Structured {
		stderrHandler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		stderrHandler = slog.NewTextHandler(os.Stderr, opts)
	}

	if cfg.LogFile == "" {
		return slog.New(redacted(stderrHandler)), func() error { return nil }
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Fall back to stderr-only if file fails
		logger := slog.New(redacted(stderrHandler))
		logger.Error("failed to open log file, using stderr only", "error", err, "file", cfg.LogFile)
		return logger, func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, opts)
	logger := slog.New(redacted(slogmulti.Fanout(stderrHandler, fileHandler)))

	cleanup := func() error {
		return file.Close()
	}

	return logger, cleanup
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
// The redaction middleware is applied, same as in SetupLogger.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	stderrHandler := slog.NewTextHandler(stderr, opts)
	fileHandler := slog.NewJSONHandler(file, opts)
	return slog.New(redacted(slogmulti.Fanout(stderrHandler, fileHandler)))
}

func redacted(handler slog.Handler) slog.Handler {
	return slogmulti.Pipe(RedactMiddleware()).Handler(handler)
}
