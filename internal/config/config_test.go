package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("THINK_DELAY_MIN_MS", "")
	t.Setenv("THINK_DELAY_MAX_MS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Chat.ThinkDelayMin != time.Second || cfg.Chat.ThinkDelayMax != 2*time.Second {
		t.Fatalf("unexpected delay bounds: %v..%v", cfg.Chat.ThinkDelayMin, cfg.Chat.ThinkDelayMax)
	}
}

func TestLoadExplicitAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidDelayBounds(t *testing.T) {
	t.Setenv("THINK_DELAY_MIN_MS", "2000")
	t.Setenv("THINK_DELAY_MAX_MS", "500")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for max < min")
	}
}

func TestLoadRejectsBadMillis(t *testing.T) {
	t.Setenv("THINK_DELAY_MIN_MS", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric delay")
	}
}
