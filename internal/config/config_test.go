package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Addr != "" {
		t.Errorf("expected empty Addr, got %q", cfg.Addr)
	}
	if cfg.BackendURL != "http://localhost:3000" {
		t.Errorf("expected BackendURL=http://localhost:3000, got %q", cfg.BackendURL)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("expected PollInterval=1s, got %s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected RequestTimeout=5s, got %s", cfg.RequestTimeout)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TRUCO_ADDR", "localhost:9090")
	t.Setenv("TRUCO_BACKEND_URL", "http://backend:8000")
	t.Setenv("TRUCO_POLL_INTERVAL_MS", "250")
	t.Setenv("TRUCO_WEB_DIR", "/srv/web")

	cfg := Load()
	if cfg.Addr != "localhost:9090" {
		t.Errorf("expected Addr override, got %q", cfg.Addr)
	}
	if cfg.BackendURL != "http://backend:8000" {
		t.Errorf("expected BackendURL override, got %q", cfg.BackendURL)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("expected PollInterval=250ms, got %s", cfg.PollInterval)
	}
	if cfg.WebDir != "/srv/web" {
		t.Errorf("expected WebDir override, got %q", cfg.WebDir)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TRUCO_POLL_INTERVAL_MS", "soon")
	t.Setenv("TRUCO_REQUEST_TIMEOUT_MS", "-3")

	cfg := Load()
	if cfg.PollInterval != time.Second {
		t.Errorf("expected default PollInterval on invalid value, got %s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected default RequestTimeout on invalid value, got %s", cfg.RequestTimeout)
	}
}
