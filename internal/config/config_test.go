package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("DEFAULT_MOVE_TIME_MS", "")
	t.Setenv("MAX_MOVE_TIME_MS", "")

	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.DefaultMoveTime != time.Second || cfg.MaxMoveTime != 10*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if AppConfig != cfg {
		t.Fatalf("LoadConfig must publish AppConfig")
	}
}

func TestLoadConfigClampsMoveTime(t *testing.T) {
	t.Setenv("DEFAULT_MOVE_TIME_MS", "5000")
	t.Setenv("MAX_MOVE_TIME_MS", "2000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()
	if cfg.DefaultMoveTime != 2*time.Second {
		t.Fatalf("expected the default clamped to 2s, got %v", cfg.DefaultMoveTime)
	}
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[2] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestEnvParsersFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "seven")
	t.Setenv("TEST_BOOL", "yes please")
	t.Setenv("TEST_DURATION", "-3")

	if GetEnvAsInt("TEST_INT", 7) != 7 {
		t.Fatalf("bad int should fall back")
	}
	if !GetEnvAsBool("TEST_BOOL", true) {
		t.Fatalf("bad bool should fall back")
	}
	if GetEnvAsDuration("TEST_DURATION", time.Second, time.Millisecond) != time.Second {
		t.Fatalf("negative duration should fall back")
	}

	t.Setenv("TEST_DURATION", "250")
	if got := GetEnvAsDuration("TEST_DURATION", time.Second, time.Millisecond); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}
}
