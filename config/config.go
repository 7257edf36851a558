// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Envelope modes accepted in ENVELOPE_MODE.
const (
	EnvelopeLegacy  = "legacy"
	EnvelopeUniform = "uniform"
)

const devTokenSecret = "giftwise-dev-secret-replace-in-prod"

// Config holds all configuration for the server.
type Config struct {
	Port           string
	DatabasePath   string
	Env            string
	LogLevel       slog.Level
	TokenSecret    string
	TokenTTL       time.Duration
	EnvelopeMode   string
	RateLimitRPS   float64
	RateLimitBurst int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Development reports whether the server runs in development mode, where
// internal error text is returned to clients.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:         getEnvOrDefault("PORT", "3000"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "giftwise.db"),
		Env:          getEnvOrDefault("APP_ENV", "development"),
		TokenSecret:  os.Getenv("TOKEN_SECRET"),
		EnvelopeMode: strings.ToLower(getEnvOrDefault("ENVELOPE_MODE", EnvelopeLegacy)),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("PORT must be a port number, got %q", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.EnvelopeMode != EnvelopeLegacy && cfg.EnvelopeMode != EnvelopeUniform {
		return Config{}, fmt.Errorf("ENVELOPE_MODE must be %q or %q, got %q", EnvelopeLegacy, EnvelopeUniform, cfg.EnvelopeMode)
	}

	if cfg.TokenSecret == "" {
		slog.Warn("TOKEN_SECRET not set, using development secret")
		cfg.TokenSecret = devTokenSecret
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = durationEnv("READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = durationEnv("WRITE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(raw, 64); err != nil || cfg.RateLimitRPS < 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number, got %q", raw)
		}
	}
	cfg.RateLimitBurst = 20
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		if cfg.RateLimitBurst, err = strconv.Atoi(raw); err != nil || cfg.RateLimitBurst < 1 {
			return Config{}, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", raw)
		}
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
