package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DoctorsAPIBaseURL != "http://localhost:3001" {
		t.Errorf("unexpected doctors API base URL: %s", cfg.DoctorsAPIBaseURL)
	}
	if cfg.DoctorsAPITimeout != 10*time.Second {
		t.Errorf("unexpected doctors API timeout: %s", cfg.DoctorsAPITimeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development environment by default")
	}
	if cfg.SnapshotAppointments {
		t.Error("appointment snapshots should be disabled by default")
	}
	if cfg.BookingWindowDays != 14 {
		t.Errorf("expected default booking window of 14 days, got %d", cfg.BookingWindowDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DOCTORS_API_TIMEOUT", "3s")
	t.Setenv("BOOKING_WINDOW_DAYS", "28")
	t.Setenv("SNAPSHOT_APPOINTMENTS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("expected non-development environment")
	}
	if cfg.DoctorsAPITimeout != 3*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.DoctorsAPITimeout)
	}
	if cfg.BookingWindowDays != 28 {
		t.Errorf("expected 28-day booking window, got %d", cfg.BookingWindowDays)
	}
	if !cfg.SnapshotAppointments {
		t.Error("expected appointment snapshots enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://staging.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsBoolInvalid(t *testing.T) {
	t.Setenv("SNAPSHOT_APPOINTMENTS", "not-a-bool")
	if getEnvAsBool("SNAPSHOT_APPOINTMENTS", false) {
		t.Error("invalid bool should fall back to default")
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_COUNT", "42")
	if got := getEnvAsInt("SOME_COUNT", 1); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := getEnvAsInt("SOME_MISSING_COUNT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}
