package config

import (
	"context"
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DIRECTORY_URL", "https://directory.corp.example.com/auth")
	t.Setenv("DIRECTORY_DOMAIN", "corp.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.MaxSessions != 10 {
		t.Fatalf("expected default session cap of 10, got %d", cfg.MaxSessions)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected session TTL %v", cfg.SessionTTL)
	}
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	setValidEnv(t)
	t.Setenv("SESSION_SECRET", "too-short")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected a validation error for a short secret")
	}
}

func TestLoad_RejectsBadDirectoryURL(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DIRECTORY_URL", "not a url")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected a validation error for a malformed directory URL")
	}
}
