package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment. It is built
// once in main and handed to the pieces that need it, so no handler reads
// os.Getenv at request time.
type Config struct {
	Port          string
	DatabaseURL   string // Postgres DSN; sqlite fallback is used when empty
	SQLitePath    string
	SessionSecret string
	SessionTTL    time.Duration
	RedisAddr     string // catalog cache is disabled when empty
	RedisPassword string
}

func Load() Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}

	return Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnvOrDefault("SQLITE_PATH", "pharmacy.db"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "dev-only-secret"),
		SessionTTL:    ttl,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
