package config

import (
	"testing"
	"time"
)

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	cfg := Load()
	def := Default()
	if cfg != def {
		t.Fatalf("Load with empty env = %+v, want defaults", cfg)
	}
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("ARENA_PORT", ":9999")
	t.Setenv("ARENA_TICK_RATE", "30")
	t.Setenv("ARENA_MAP_WIDTH", "2500")
	t.Setenv("ARENA_MAX_DURATION", "90s")
	t.Setenv("ARENA_SHRINK_ENABLED", "false")
	t.Setenv("ARENA_PAID_STAT_MULT", "1.5")

	cfg := Load()
	if cfg.Port != ":9999" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.TickRate != 30 {
		t.Fatalf("tick rate = %d", cfg.TickRate)
	}
	if cfg.MapWidth != 2500 {
		t.Fatalf("map width = %f", cfg.MapWidth)
	}
	if cfg.MaxDuration != 90*time.Second {
		t.Fatalf("max duration = %v", cfg.MaxDuration)
	}
	if cfg.ShrinkEnabled {
		t.Fatal("shrink still enabled")
	}
	if cfg.PaidTier.StatMultiplier != 1.5 {
		t.Fatalf("paid stat mult = %f", cfg.PaidTier.StatMultiplier)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ARENA_TICK_RATE", "sixty")
	t.Setenv("ARENA_MAX_DURATION", "forever")

	cfg := Load()
	def := Default()
	if cfg.TickRate != def.TickRate {
		t.Fatalf("tick rate = %d, want default %d", cfg.TickRate, def.TickRate)
	}
	if cfg.MaxDuration != def.MaxDuration {
		t.Fatalf("max duration = %v, want default %v", cfg.MaxDuration, def.MaxDuration)
	}
}
