package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_EXPIRES_IN", "GOOGLE_AI_API_KEY", "AI_TIMEOUT", "LOG_RETENTION_DAYS", "LOG_PURGE_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Errorf("unexpected server defaults %q %q", cfg.Port, cfg.Env)
	}
	if cfg.JWTExpirationDur != 24*time.Hour || cfg.AITimeout != 10*time.Second {
		t.Errorf("unexpected durations %s %s", cfg.JWTExpirationDur, cfg.AITimeout)
	}
	if cfg.LogRetentionDays != 90 || cfg.LogPurgeSchedule != "@daily" {
		t.Errorf("unexpected retention %d %q", cfg.LogRetentionDays, cfg.LogPurgeSchedule)
	}
	if cfg.AIEnabled() {
		t.Error("AI should be disabled without a key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("GOOGLE_AI_API_KEY", "real-key")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("LOG_RETENTION_DAYS", "30")

	cfg, _ := Load()
	if !cfg.IsProduction() || !cfg.AIEnabled() {
		t.Error("expected production with AI enabled")
	}
	if cfg.AITimeout != 3*time.Second || cfg.LogRetentionDays != 30 {
		t.Errorf("unexpected overrides %s %d", cfg.AITimeout, cfg.LogRetentionDays)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GOOGLE_AI_API_KEY", "demo-key")
	t.Setenv("AI_TIMEOUT", "soon")
	t.Setenv("LOG_RETENTION_DAYS", "-1")

	cfg, _ := Load()
	if cfg.AIEnabled() {
		t.Error("demo-key must count as unset")
	}
	if cfg.AITimeout != 10*time.Second || cfg.LogRetentionDays != 90 {
		t.Errorf("expected defaults, got %s %d", cfg.AITimeout, cfg.LogRetentionDays)
	}
}
