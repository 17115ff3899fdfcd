// Package main is the entrypoint for the dbprobe connectivity check.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/penshort/dbprobe/internal/config"
	"github.com/penshort/dbprobe/internal/probe"
	"github.com/penshort/dbprobe/internal/repository"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr))
}

// run executes one probe and returns the process exit code.
// Probe failures are reported but still exit 0; only startup errors exit 1.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("failed to load config", "error", err)
		return 1
	}

	// Initialize logger
	logger := initLogger(cfg, stderr).With(slog.String("run_id", ulid.Make().String()))

	// Initialize datasource client
	client, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to open datasource",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return 1
	}

	logger.Info("probing database",
		slog.String("database_url", redactURL(cfg.DatabaseURL)),
		slog.String("table", cfg.Table),
	)

	reporter := probe.NewTextReporter(stdout, stderr, func(err error) string {
		return sanitizeError(err, cfg.DatabaseURL)
	})

	res := probe.New(client, cfg.Table, reporter, logger).Run(ctx)
	logResult(logger, res, cfg.DatabaseURL)

	return 0
}

// logResult records failure diagnostics with credentials stripped.
func logResult(logger *slog.Logger, res probe.Result, databaseURL string) {
	if res.Err != nil {
		logger.Debug("probe failed",
			slog.Bool("connected", res.Connected),
			slog.String("error", sanitizeError(res.Err, databaseURL)),
		)
	}
	if res.DisconnectErr != nil {
		logger.Warn("failed to disconnect",
			slog.String("error", sanitizeError(res.DisconnectErr, databaseURL)),
		)
	}
}

// initLogger initializes the slog logger based on configuration.
// Diagnostics go to w so stdout stays reserved for probe output.
func initLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
