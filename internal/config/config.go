package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Data files
	DataDir          string
	TransactionsFile string
	SettingsFile     string

	// Reporting
	BudgetNearPercent   int64
	ReportTopCategories int

	// Credential gate
	PINAttempts int

	// Recovery policy: when true, a corrupt data file is logged and
	// the store starts empty instead of refusing to start.
	AllowCorruptReset bool
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataDir:          getEnv("DATA_DIR", "./data"),
		TransactionsFile: getEnv("TRANSACTIONS_FILE", "transactions.json"),
		SettingsFile:     getEnv("SETTINGS_FILE", "settings.json"),

		BudgetNearPercent:   int64(getEnvInt("BUDGET_NEAR_PERCENT", 80)),
		ReportTopCategories: getEnvInt("REPORT_TOP_CATEGORIES", 10),

		PINAttempts: getEnvInt("PIN_ATTEMPTS", 3),

		AllowCorruptReset: getEnvBool("ALLOW_CORRUPT_RESET", false),
	}
}

// TransactionsPath returns the full path of the transactions file.
func (c *Config) TransactionsPath() string {
	return filepath.Join(c.DataDir, c.TransactionsFile)
}

// SettingsPath returns the full path of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, c.SettingsFile)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	} else if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", c.DataDir, err))
		}
	}

	if c.TransactionsFile == "" {
		errors = append(errors, "transactions file name cannot be empty")
	}
	if c.SettingsFile == "" {
		errors = append(errors, "settings file name cannot be empty")
	}
	if c.TransactionsFile == c.SettingsFile {
		errors = append(errors, "transactions and settings files must differ")
	}

	if c.BudgetNearPercent < 1 || c.BudgetNearPercent > 100 {
		errors = append(errors, fmt.Sprintf("invalid budget near percent %d: must be between 1 and 100", c.BudgetNearPercent))
	}

	if c.ReportTopCategories < 1 {
		errors = append(errors, fmt.Sprintf("invalid report top categories %d: must be at least 1", c.ReportTopCategories))
	}

	if c.PINAttempts < 1 {
		errors = append(errors, fmt.Sprintf("invalid pin attempts %d: must be at least 1", c.PINAttempts))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
