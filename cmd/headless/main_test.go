package main

import (
	"testing"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

func TestLoadConfigTuning(t *testing.T) {
	cfg, err := loadConfig("", "legacy")
	if err != nil {
		t.Fatalf("legacy: %v", err)
	}
	if cfg.Position != sim.LegacyGains(sim.DefaultConfig()).Position {
		t.Fatalf("legacy gains not applied: %+v", cfg.Position)
	}
	if cfg, err = loadConfig("", "default"); err != nil || cfg.Position != sim.DefaultConfig().Position {
		t.Fatalf("default tuning: %+v (%v)", cfg.Position, err)
	}
	if _, err := loadConfig("", "aggressive"); err == nil {
		t.Fatalf("expected error for unknown tuning")
	}
}
