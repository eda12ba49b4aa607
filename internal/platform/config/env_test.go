package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	TickRate int           `env:"TEST_TICK_RATE" envDefault:"20"`
	Interval time.Duration `env:"TEST_INTERVAL" envDefault:"30s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TickRate != 20 {
		t.Fatalf("expected default tick rate 20, got %d", cfg.TickRate)
	}
	if cfg.Interval != 30*time.Second {
		t.Fatalf("expected default interval 30s, got %s", cfg.Interval)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TEST_TICK_RATE", "99")
	t.Setenv("TIMERESTRICT_TEST_TICK_RATE", "40")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TickRate != 40 {
		t.Fatalf("expected prefixed tick rate 40, got %d", cfg.TickRate)
	}
}

func TestParseEnvWithPrefixCustom(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HOST_TEST_INTERVAL", "5s")

	if err := ParseEnvWithPrefix(&cfg, "HOST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Interval != 5*time.Second {
		t.Fatalf("expected interval 5s, got %s", cfg.Interval)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TIMERESTRICT_TEST_TICK_RATE", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
