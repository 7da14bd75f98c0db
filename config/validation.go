package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// requirements lists the fields that must be non-empty per environment.
// Database fields are checked separately because they depend on the driver.
var requirements = map[Environment][]string{
	Development: {"server_port", "jwt_secret"},
	Test:        {"server_port", "jwt_secret"},
	CI:          {"server_port", "jwt_secret", "db_password"},
	Production:  {"server_port", "server_host", "jwt_secret", "db_password", "redis_url"},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs ValidationErrors

	for _, field := range requirements[env] {
		if fieldValue(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	if _, err := strconv.Atoi(cfg.ServerPort); cfg.ServerPort != "" && err != nil {
		errs = append(errs, ValidationError{Field: "server_port", Message: "must be numeric"})
	}

	switch cfg.DBDriver {
	case "postgres":
		for _, field := range []string{"db_host", "db_port", "db_user", "db_name"} {
			if fieldValue(cfg, field) == "" {
				errs = append(errs, ValidationError{Field: field, Message: "is required for postgres"})
			}
		}
	case "sqlite":
		if env == Production {
			errs = append(errs, ValidationError{Field: "db_driver", Message: "sqlite is not allowed in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "sqlite_path", Message: "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "db_driver", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.DiscoverLimit <= 0 {
		errs = append(errs, ValidationError{Field: "discover_limit", Message: "must be positive"})
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL < cfg.AccessTokenTTL {
		errs = append(errs, ValidationError{Field: "refresh_token_ttl", Message: "must be at least the access token ttl"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldValue(cfg *Config, field string) string {
	switch field {
	case "server_port":
		return cfg.ServerPort
	case "server_host":
		return cfg.ServerHost
	case "jwt_secret":
		return cfg.JWTSecret
	case "db_host":
		return cfg.DBHost
	case "db_port":
		return cfg.DBPort
	case "db_user":
		return cfg.DBUser
	case "db_password":
		return cfg.DBPassword
	case "db_name":
		return cfg.DBName
	case "redis_url":
		if cfg.RedisURL == "" && cfg.RedisHost != "" {
			return cfg.RedisHost
		}
		return cfg.RedisURL
	}
	return ""
}
