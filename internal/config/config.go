// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds the application configuration.
type Config struct {
	Port              string
	AllowedOrigins    []string
	AWSRegion         string
	S3Bucket          string
	CloudfrontDomain  string
	DatabasePath      string // empty means in-memory store
	PuzzleMaxAttempts int
	BedrockModelID    string
	SuggestFallback   bool
	GenerateRateLimit int // requests per minute per IP
	LogLevel          string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	maxAttempts, err := getEnvInt("PUZZLE_MAX_ATTEMPTS", 500)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("GENERATE_RATE_LIMIT", 30)
	if err != nil {
		return nil, err
	}
	fallback, err := strconv.ParseBool(getEnv("SUGGEST_FALLBACK", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUGGEST_FALLBACK: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		AWSRegion:         getEnv("AWS_REGION", "ap-northeast-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		CloudfrontDomain:  getEnv("CLOUDFRONT_DOMAIN", ""),
		DatabasePath:      getEnv("DATABASE_PATH", ""),
		PuzzleMaxAttempts: maxAttempts,
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", ""),
		SuggestFallback:   fallback,
		GenerateRateLimit: rateLimit,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate port is a number
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.New("invalid port: must be a number")
	}
	if c.PuzzleMaxAttempts < 1 {
		return errors.New("PUZZLE_MAX_ATTEMPTS must be at least 1")
	}
	if c.GenerateRateLimit < 1 {
		return errors.New("GENERATE_RATE_LIMIT must be at least 1")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}

	return nil
}

// Level returns the configured zerolog level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// S3Enabled reports whether puzzle archiving is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// splitList splits a ';'-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
