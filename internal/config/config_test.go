package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.BusinessName == "" {
		t.Fatalf("business name default missing")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("WHATSAPP_PHONE", "5493410000000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()

	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.WhatsAppPhone != "5493410000000" {
		t.Fatalf("unexpected phone %q", cfg.WhatsAppPhone)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestCORSOriginsWildcard(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	if got := FromEnv().CORSOrigins; got != nil {
		t.Fatalf("wildcard should yield nil, got %v", got)
	}
}
