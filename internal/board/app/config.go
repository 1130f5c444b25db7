package app

import (
	"os"
	"strconv"
	"time"

	"github.com/oakhall/clubboard/internal/board/service"
	"github.com/oakhall/clubboard/pkg/cryptox"
)

type Config struct {
	ClubInviteCode string // Required: invite code that grants club membership
	AdminSecret    string // Required: code that grants or revokes admin rights

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./clubboard.db)
	BcryptCost           int           // Optional: bcrypt work factor (default: 12)
	SessionTTL           time.Duration // Optional: sliding session lifetime (default: 30 days)
	SessionCookie        string        // Optional: session cookie name (default: clubboard_session)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		ClubInviteCode:       os.Getenv("CLUB_INVITE_CODE"),
		AdminSecret:          os.Getenv("ADMIN_SECRET"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "clubboard.db"),
		BcryptCost:           getEnvIntOrDefault("BCRYPT_COST", cryptox.DefaultCost),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", service.DefaultSessionTTL),
		SessionCookie:        getEnvOrDefault("SESSION_COOKIE", "clubboard_session"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
