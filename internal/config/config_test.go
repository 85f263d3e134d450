package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONTHLY_BUDGET", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MonthlyBudget != 50000 {
		t.Errorf("MonthlyBudget = %v, want 50000", cfg.MonthlyBudget)
	}
	if cfg.AITimeout != 15*time.Second {
		t.Errorf("AITimeout = %v, want 15s", cfg.AITimeout)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONTHLY_BUDGET", "75000")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MonthlyBudget != 75000 {
		t.Errorf("MonthlyBudget = %v, want 75000", cfg.MonthlyBudget)
	}
	if cfg.AITimeout != 5*time.Second {
		t.Errorf("AITimeout = %v, want 5s", cfg.AITimeout)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MONTHLY_BUDGET", "lots")
	t.Setenv("AI_TIMEOUT_SECONDS", "-3")

	cfg := Load()

	if cfg.MonthlyBudget != 50000 {
		t.Errorf("MonthlyBudget = %v, want default on malformed value", cfg.MonthlyBudget)
	}
	if cfg.AITimeout != 15*time.Second {
		t.Errorf("AITimeout = %v, want default on non-positive value", cfg.AITimeout)
	}
}
