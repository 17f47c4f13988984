package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment  string
	LogLevel     slog.Level
	RedisURL     string
	DataDir      string
	TickInterval time.Duration
	WorldID      string // optional: restore/persist world state under this id
}

func Load() (*Config, error) {
	tickMS, err := strconv.Atoi(getEnv("TICK_MS", "1000"))
	if err != nil || tickMS <= 0 {
		return nil, fmt.Errorf("TICK_MS must be a positive integer: %q", os.Getenv("TICK_MS"))
	}

	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		TickInterval: time.Duration(tickMS) * time.Millisecond,
		WorldID:      getEnv("WORLD_ID", ""),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
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
