package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Upstream doctors API.
	DoctorsAPIBaseURL string
	DoctorsAPITimeout time.Duration

	// Default scan length for booking-window lookups, in days.
	BookingWindowDays int

	// Durable storage for favorites (and appointment snapshots when enabled).
	RedisAddr     string
	RedisPassword string
	FavoritesFile string

	SnapshotAppointments bool

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DoctorsAPIBaseURL:    getEnv("DOCTORS_API_BASE_URL", "http://localhost:3001"),
		DoctorsAPITimeout:    getEnvAsDuration("DOCTORS_API_TIMEOUT", 10*time.Second),
		BookingWindowDays:    getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		FavoritesFile:        getEnv("FAVORITES_FILE", "favorites.json"),
		SnapshotAppointments: getEnvAsBool("SNAPSHOT_APPOINTMENTS", false),
		CORSAllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
	}
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
