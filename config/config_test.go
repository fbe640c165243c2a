package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOGIN_MODE", "SESSION_STORE", "SESSION_TTL", "TIMEZONE", "ROUTE_GUARD", "BACKEND_URL", "COOKIE_SECURE", "LOGIN_RATE_PER_MINUTE", "LOGIN_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LoginMode != LoginModeBackend {
		t.Errorf("LoginMode = %q, want %q", cfg.LoginMode, LoginModeBackend)
	}
	if !cfg.RouteGuard {
		t.Error("RouteGuard should default to on")
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.BackendURL != "http://localhost:8000/api" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.LoginRatePerMinute != 10 || cfg.LoginBurst != 5 {
		t.Errorf("login limit = %v/min burst %d", cfg.LoginRatePerMinute, cfg.LoginBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOGIN_MODE", "bypass")
	t.Setenv("ROUTE_GUARD", "off")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("BACKEND_URL", "http://backend:5169/api/")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LoginMode != LoginModeBypass {
		t.Errorf("LoginMode = %q", cfg.LoginMode)
	}
	if cfg.RouteGuard {
		t.Error("RouteGuard should be off")
	}
	if cfg.BackendURL != "http://backend:5169/api" {
		t.Errorf("trailing slash not trimmed: %q", cfg.BackendURL)
	}
	if cfg.Timezone != time.UTC {
		t.Errorf("Timezone = %v", cfg.Timezone)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"login mode", "LOGIN_MODE", "sso"},
		{"session store", "SESSION_STORE", "files"},
		{"ttl", "SESSION_TTL", "forever"},
		{"timezone", "TIMEZONE", "Mars/Olympus"},
		{"cookie secure", "COOKIE_SECURE", "maybe"},
		{"login rate", "LOGIN_RATE_PER_MINUTE", "-1"},
		{"login burst", "LOGIN_BURST", "many"},
		{"csrf key", "CSRF_KEY", "too-short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
