package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Backend selection: "sqlite" (durable) or "memory" (throwaway)
	DataBackend string

	// Logging
	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		LogLevel:     parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "sqlite", "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [sqlite memory]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
