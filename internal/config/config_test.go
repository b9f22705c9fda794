package config

import (
	"errors"
	"testing"
)

func withoutDotenv(t *testing.T) {
	t.Helper()
	old := loadDotenv
	loadDotenv = func() error { return errors.New("no .env") }
	t.Cleanup(func() { loadDotenv = old })
}

func TestLoadDefaults(t *testing.T) {
	withoutDotenv(t)

	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.CacheTTLSeconds != 3600 {
		t.Fatalf("expected default cache ttl, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.CapPerDay != 6 {
		t.Fatalf("expected default cap per day, got %d", cfg.CapPerDay)
	}
	if cfg.MaxTripDays != 14 {
		t.Fatalf("expected default max trip days, got %d", cfg.MaxTripDays)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	withoutDotenv(t)
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("CAP_PER_DAY", "5")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected override log level")
	}
	if cfg.CacheTTLSeconds != 60 || cfg.CapPerDay != 5 {
		t.Fatalf("expected numeric overrides, got ttl=%d cap=%d", cfg.CacheTTLSeconds, cfg.CapPerDay)
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitPerSecond)
	}
	if !cfg.RunMigrations {
		t.Fatalf("expected run migrations override")
	}
}

func TestLoadRejectsNonPositiveCap(t *testing.T) {
	withoutDotenv(t)
	t.Setenv("CAP_PER_DAY", "0")
	t.Setenv("MAX_TRIP_DAYS", "-3")

	cfg := Load()
	if cfg.CapPerDay != 6 || cfg.MaxTripDays != 14 {
		t.Fatalf("expected fallbacks, got cap=%d days=%d", cfg.CapPerDay, cfg.MaxTripDays)
	}
}

func TestLoadEmptyRedisAddrDisablesRedis(t *testing.T) {
	withoutDotenv(t)
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	if cfg.RedisAddr != "" {
		t.Fatalf("expected empty redis addr, got %q", cfg.RedisAddr)
	}
}

func TestLoadBoundsCapPerDay(t *testing.T) {
	withoutDotenv(t)
	t.Setenv("CAP_PER_DAY", "1000")

	cfg := Load()
	if cfg.CapPerDay != MaxCapPerDay {
		t.Fatalf("expected cap bounded to %d, got %d", MaxCapPerDay, cfg.CapPerDay)
	}
}
