package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns environment variable value when set", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_VAR", "custom_value")

		result := getEnv("TEST_CONFIG_VAR", "default_value")

		assert.Equal(t, "custom_value", result)
	})

	t.Run("returns default value when env var not set", func(t *testing.T) {
		result := getEnv("NONEXISTENT_CONFIG_VAR_12345", "default_value")

		assert.Equal(t, "default_value", result)
	})

	t.Run("returns default value when env var is empty string", func(t *testing.T) {
		t.Setenv("EMPTY_CONFIG_VAR", "")

		result := getEnv("EMPTY_CONFIG_VAR", "default_value")

		assert.Equal(t, "default_value", result)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{"minutes", "15m", 15 * time.Minute},
		{"hours", "24h", 24 * time.Hour},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseDuration(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("1"))
	assert.False(t, parseBool("false"))
	assert.False(t, parseBool("0"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 100, parseInt("100"))
	assert.Equal(t, 0, parseInt("0"))
}

func TestLoad(t *testing.T) {
	t.Run("loads config with all required env vars", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("MONGO_DATABASE", "testdb")
		t.Setenv("JWT_SECRET", "test-secret-key")

		cfg := Load()

		require.NotNil(t, cfg)
		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Equal(t, "testdb", cfg.MongoDatabase)
		assert.Equal(t, "test-secret-key", cfg.JWTSecret)

		// Defaults
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "debug", cfg.GinMode)
		assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
		assert.False(t, cfg.AdminBypassEnabled)
		assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
		assert.Equal(t, "recipe-images", cfg.S3Bucket)
		assert.Equal(t, 100, cfg.EstimationQueueSize)
		assert.Equal(t, 2, cfg.EstimationWorkers)
	})

	t.Run("overrides defaults from environment", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("MONGO_DATABASE", "testdb")
		t.Setenv("JWT_SECRET", "test-secret-key")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("JWT_EXPIRY", "15m")
		t.Setenv("ADMIN_BYPASS_ENABLED", "true")
		t.Setenv("ESTIMATION_WORKERS", "4")

		cfg := Load()

		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
		assert.True(t, cfg.AdminBypassEnabled)
		assert.Equal(t, 4, cfg.EstimationWorkers)
	})
}
