package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "CORS_ORIGINS", "DB_DRIVER", "DB_HOST", "DB_PORT",
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "REDIS_URL", "REDIS_HOST",
		"JWT_SECRET", "DISCOVER_LIMIT", "DISCOVER_CACHE_TTL", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "recipeswipe")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://192.168.1.113:5173")
	t.Setenv("DISCOVER_CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "recipeswipe", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:5173", "http://192.168.1.113:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 90*time.Second, cfg.DiscoverCacheTTL)
	assert.Equal(t, 50, cfg.DiscoverLimit)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigFromSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("ENV", "production")

	secrets := map[string]string{
		"server_port": "9000",
		"server_host": "api.internal",
		"db_host":     "db",
		"db_user":     "swipe",
		"db_password": "s3cret\n",
		"db_name":     "swipe",
		"jwt_secret":  "prod-secret",
		"redis_url":   "redis://cache:6379/1",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "api.internal:9000", cfg.Addr())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "dev-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "recipeswipe.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.DiscoverCacheTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestValidateConfigAggregatesErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	cfg := defaults()
	cfg.ServerPort = "http"
	cfg.DBDriver = "sqlite"

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["jwt_secret"])
	assert.True(t, fields["server_port"])
	assert.True(t, fields["db_driver"])
	assert.True(t, fields["redis_url"])
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
