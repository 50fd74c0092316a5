package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment
// variables, matching SPEC_FULL.md §6's env surface: room grace
// period, dedup window, broadcast cooldown, plus the optional audit
// trail backing stores.
type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string // optional, durable audit trail
	RedisURL    string // optional, audit trail only; the redeal timeout is in-process

	RoomGracePeriod   time.Duration
	DedupWindow       time.Duration
	BroadcastCooldown time.Duration
	RedealTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() *Config {
	return &Config{
		Port:              envOrDefault("PORT", "8009"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RoomGracePeriod:   envDurationOrDefault("ROOM_GRACE_PERIOD", 0),
		DedupWindow:       envDurationOrDefault("DEDUP_WINDOW", 100*time.Millisecond),
		BroadcastCooldown: envDurationOrDefault("BROADCAST_COOLDOWN", 50*time.Millisecond),
		RedealTimeout:     envDurationOrDefault("REDEAL_TIMEOUT", 15*time.Second),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
