package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "SESSION_TTL", "AI_API_KEY", "OPENAI_API_KEY", "ARK_API_KEY", "AI_MODEL", "AI_TEMPERATURE", "CORS_ORIGINS", "BASE_URL", "SECRET_KEY"} {
		t.Setenv(key, "")
	}
	// Empty values still count as present; numeric and duration keys fall
	// back because an empty string does not parse.
	t.Setenv("ENV", "development")
	t.Setenv("BASE_URL", "http://localhost:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Port)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.AI.MaxTokens != 500 {
		t.Errorf("expected 500 max tokens, got %d", cfg.AI.MaxTokens)
	}
	if cfg.AI.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.AI.Temperature)
	}
	if cfg.AI.Enabled() {
		t.Error("expected AI to be disabled without an API key")
	}
	if cfg.Auth.SecretKey == "" {
		t.Error("expected dev secret key fallback")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5000" {
		t.Errorf("expected CORS origins to default to base URL, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_APIKeyFallbackChain(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("ARK_API_KEY", "ark-key")
	t.Setenv("AI_MODEL", "fred-model")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.APIKey != "ark-key" {
		t.Errorf("expected ARK_API_KEY to be used, got %q", cfg.AI.APIKey)
	}
	if !cfg.AI.Enabled() {
		t.Error("expected AI to be enabled with key and model")
	}

	t.Setenv("AI_API_KEY", "ai-key")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.APIKey != "ai-key" {
		t.Errorf("expected AI_API_KEY to win over ARK_API_KEY, got %q", cfg.AI.APIKey)
	}
}

func TestLoad_OpenAIKeyIsNotSentToArk(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("ARK_API_KEY", "")
	t.Setenv("AI_MODEL", "gpt-3.5-turbo")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("OpenAI key must not be used as the Ark key, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Enabled() {
		t.Error("expected AI to stay disabled without an Ark key")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", "short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short production secret")
	}
	if !strings.Contains(err.Error(), "SECRET_KEY") {
		t.Errorf("expected SECRET_KEY error, got %v", err)
	}
}

func TestLoad_InvalidTemperature(t *testing.T) {
	t.Setenv("AI_TEMPERATURE", "warm")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed AI_TEMPERATURE")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "fred", Password: "p@ss:word", Name: "fredai"}
	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(db:3306)") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime=true, got %s", dsn)
	}

	override := DatabaseConfig{dsnOverride: "user:pw@tcp(x:1)/y"}
	if override.DSN() != "user:pw@tcp(x:1)/y" {
		t.Errorf("expected DATABASE_URL override, got %s", override.DSN())
	}
}

func TestParseCSV(t *testing.T) {
	got := parseCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected parse result: %v", got)
	}
}
