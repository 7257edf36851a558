package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_PATH", "APP_ENV", "LOG_LEVEL", "TOKEN_SECRET", "TOKEN_TTL",
		"ENVELOPE_MODE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "READ_TIMEOUT", "WRITE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "giftwise.db", cfg.DatabasePath)
	assert.True(t, cfg.Development())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, devTokenSecret, cfg.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, EnvelopeLegacy, cfg.EnvelopeMode)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("ENVELOPE_MODE", "UNIFORM")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Development())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.TokenSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, EnvelopeUniform, cfg.EnvelopeMode)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PORT":             "http",
		"LOG_LEVEL":        "loud",
		"ENVELOPE_MODE":    "sometimes",
		"TOKEN_TTL":        "forever",
		"READ_TIMEOUT":     "-1s",
		"RATE_LIMIT_RPS":   "-3",
		"RATE_LIMIT_BURST": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
