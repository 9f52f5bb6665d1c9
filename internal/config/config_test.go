package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")
	t.Setenv("IDEMPOTENCY_TTL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.ShutdownPeriod != 10*time.Second {
		t.Fatalf("expected default shutdown period, got %s", cfg.ShutdownPeriod)
	}
	if !cfg.IsDev() {
		t.Fatal("expected development mode")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")

	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail without JWT_SECRET")
	}
}

func TestLoadRequiresInfraOutsideDev(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail without DATABASE_URL in production")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail without REDIS_URL in production")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	if _, err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoadRejectsInvalidOverrides(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("BCRYPT_COST", "high")
	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail with a non-numeric BCRYPT_COST")
	}
	t.Setenv("BCRYPT_COST", "12")

	t.Setenv("IDEMPOTENCY_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail with an invalid IDEMPOTENCY_TTL")
	}
	t.Setenv("IDEMPOTENCY_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.IdempotencyTTL != time.Hour {
		t.Fatalf("expected 1h idempotency ttl, got %s", cfg.IdempotencyTTL)
	}
}
