package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the discovery API
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Recipe image storage
	S3Bucket string
	S3Region string
	// S3PresignTTL > 0 marks the bucket private: uploads return presigned URLs
	S3PresignTTL time.Duration

	// Discover feed
	DiscoverLimit    int
	DiscoverCacheTTL time.Duration

	MigrationsDir string
}

// DSN returns the postgres connection string for the configured database
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a redis endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults()

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerPort:       "8000",
		ServerHost:       "0.0.0.0",
		CORSOrigins:      []string{"http://localhost:5173"},
		DBDriver:         "postgres",
		DBPort:           "5432",
		DBSSLMode:        "disable",
		SQLitePath:       "recipeswipe.db",
		AccessTokenTTL:   24 * time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		S3Region:         "us-east-1",
		DiscoverLimit:    50,
		DiscoverCacheTTL: 5 * time.Minute,
		MigrationsDir:    "migrations",
	}
}

// loadCIConfig reads everything from the environment; CI has no secrets directory
func loadCIConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		return os.Getenv(strings.ToUpper(name))
	})
}

// loadDevConfig prefers environment variables and falls back to Docker secrets
func loadDevConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		if v := os.Getenv(strings.ToUpper(name)); v != "" {
			return v
		}
		return readSecret(name)
	})
}

// loadProdConfig prefers Docker secrets and falls back to environment variables
func loadProdConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		if v := readSecret(name); v != "" {
			return v
		}
		return os.Getenv(strings.ToUpper(name))
	})
}

func apply(cfg *Config, lookup func(string) string) {
	setString(&cfg.ServerPort, lookup("server_port"))
	setString(&cfg.ServerHost, lookup("server_host"))
	if origins := lookup("cors_origins"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	setString(&cfg.DBDriver, lookup("db_driver"))
	setString(&cfg.DBHost, lookup("db_host"))
	setString(&cfg.DBPort, lookup("db_port"))
	setString(&cfg.DBUser, lookup("db_user"))
	setString(&cfg.DBPassword, lookup("db_password"))
	setString(&cfg.DBName, lookup("db_name"))
	setString(&cfg.DBSSLMode, lookup("db_ssl_mode"))
	setString(&cfg.SQLitePath, lookup("sqlite_path"))

	setString(&cfg.RedisHost, lookup("redis_host"))
	setString(&cfg.RedisPort, lookup("redis_port"))
	setString(&cfg.RedisPassword, lookup("redis_password"))
	setString(&cfg.RedisURL, lookup("redis_url"))
	if db, err := strconv.Atoi(lookup("redis_db")); err == nil {
		cfg.RedisDB = db
	}

	setString(&cfg.JWTSecret, lookup("jwt_secret"))
	setDuration(&cfg.AccessTokenTTL, lookup("access_token_ttl"))
	setDuration(&cfg.RefreshTokenTTL, lookup("refresh_token_ttl"))

	setString(&cfg.S3Bucket, lookup("s3_bucket_name"))
	setString(&cfg.S3Region, lookup("aws_region"))
	setDuration(&cfg.S3PresignTTL, lookup("s3_presign_ttl"))

	if n, err := strconv.Atoi(lookup("discover_limit")); err == nil {
		cfg.DiscoverLimit = n
	}
	setDuration(&cfg.DiscoverCacheTTL, lookup("discover_cache_ttl"))
	setString(&cfg.MigrationsDir, lookup("migrations_dir"))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
