// Package cli provides common bootstrap utilities for cmd binaries:
// env file loading, logger setup and store initialization.
package cli

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"midaxas/internal/config"
	"midaxas/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger installs a colored slog handler at the level given by
// LOG_LEVEL (default info) and returns the logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      levelFromEnv(),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStores loads both stores, applying the corrupt-file policy: a
// corrupt file aborts startup unless AllowCorruptReset is set, in
// which case the store starts empty and the file is replaced on the
// next mutation. Missing files are not errors.
func OpenStores(cfg *config.Config, logger *slog.Logger) (*storage.RecordStore, *storage.SettingsStore, error) {
	records := storage.NewRecordStore(cfg.TransactionsPath())
	if err := loadWithPolicy(records.Load, cfg, logger); err != nil {
		return nil, nil, err
	}

	settings := storage.NewSettingsStore(cfg.SettingsPath())
	if err := loadWithPolicy(settings.Load, cfg, logger); err != nil {
		return nil, nil, err
	}

	return records, settings, nil
}

func loadWithPolicy(load func() error, cfg *config.Config, logger *slog.Logger) error {
	err := load()
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrCorruptData) && cfg.AllowCorruptReset {
		logger.Warn("Corrupt data file, starting empty as configured", "error", err)
		return nil
	}
	return err
}
