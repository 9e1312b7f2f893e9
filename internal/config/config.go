// Package config loads the server configuration from the environment.
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8000"
	defaultCORSAllowOrigins = "http://localhost:3000, http://127.0.0.1:3000"
	defaultBodyLimitBytes   = 1 << 20
	defaultEventsTopicName  = "note-events"
)

type Config struct {
	Port string

	// Empty selects the in-memory store.
	DBConnectionString string
	DBMigrate          bool

	CORSAllowOrigins string
	BodyLimitBytes   int

	NoteEventsTopicName string

	LogLevel log.Level
}

func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func (c *Config) UsesDatabase() bool {
	return c.DBConnectionString != ""
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	var problems []string

	cfg := &Config{
		Port:                valueOr(getenv("APP_PORT"), defaultPort),
		DBConnectionString:  strings.TrimSpace(getenv("DB_CONNECTION_STRING")),
		CORSAllowOrigins:    valueOr(getenv("CORS_ALLOW_ORIGINS"), defaultCORSAllowOrigins),
		NoteEventsTopicName: valueOr(getenv("NOTE_EVENTS_TOPIC_NAME"), defaultEventsTopicName),
		DBMigrate:           true,
		BodyLimitBytes:      defaultBodyLimitBytes,
		LogLevel:            log.LevelInfo,
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		problems = append(problems, fmt.Sprintf("APP_PORT must be a port number, got %q", cfg.Port))
	}

	if v := strings.TrimSpace(getenv("DB_MIGRATE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("DB_MIGRATE must be a boolean, got %q", v))
		}
		cfg.DBMigrate = b
	}

	if v := strings.TrimSpace(getenv("BODY_LIMIT_BYTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("BODY_LIMIT_BYTES must be a positive integer, got %q", v))
		}
		cfg.BodyLimitBytes = n
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		level, ok := parseLevel(v)
		if !ok {
			problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got %q", v))
		}
		cfg.LogLevel = level
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}
	return cfg, nil
}

// ValidationError lists every invalid setting found by FromEnv.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func parseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, true
	case "debug":
		return log.LevelDebug, true
	case "info":
		return log.LevelInfo, true
	case "warn", "warning":
		return log.LevelWarn, true
	case "error":
		return log.LevelError, true
	default:
		return log.LevelInfo, false
	}
}

func valueOr(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
