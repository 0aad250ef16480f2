package config

import (
	"fmt"
	"strconv"
	"strings"
)

const minProductionSecretLength = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for the environment it was loaded in.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	} else if cfg.Environment == Production && len(cfg.JWTSecret) < minProductionSecretLength {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d characters in production", minProductionSecretLength))
	}
	if cfg.JWTExpiry <= 0 {
		add("JWT_EXPIRY", "must be positive")
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", "must be a valid port number")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.DBHost == "" {
				add("DB_HOST", "is required")
			}
			if cfg.DBName == "" {
				add("DB_NAME", "is required")
			}
			if cfg.Environment == Production && cfg.DBPassword == "" {
				add("DB_PASSWORD", "is required in production")
			}
		}
	case "sqlite":
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.AuthRateLimit <= 0 || cfg.RecipeRateLimit <= 0 {
		add("RATE_LIMIT", "limits must be positive")
	}
	if cfg.AuthRateWindow <= 0 || cfg.RecipeRateWindow <= 0 {
		add("RATE_WINDOW", "windows must be positive")
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
