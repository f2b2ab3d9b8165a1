package sim_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := sim.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.HoverThrust(); math.Abs(got-98.1) > 1e-9 {
		t.Fatalf("hover thrust: %v", got)
	}
	if got := cfg.MaxThrust(); math.Abs(got-196.2) > 1e-9 {
		t.Fatalf("max thrust: %v", got)
	}
	if err := sim.LegacyGains(cfg).Validate(); err != nil {
		t.Fatalf("legacy config invalid: %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Mass = 0
	cfg.PlanarDamping = 1.5
	cfg.DepthMin = 6
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, field := range []string{"mass", "planar_damping", "depth_min"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidateIntegralLimitOnlyWithAntiWindup(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.IntegralLimit = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error without anti-windup: %v", err)
	}
	cfg.AntiWindup = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero integral limit")
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drone.json")
	data := `{"mass": 12, "altitude": {"kp": 70, "ki": 0, "kd": 45}, "sanitize": true}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := sim.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mass != 12 || cfg.Altitude.Kp != 70 || !cfg.Sanitize {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	def := sim.DefaultConfig()
	if cfg.Gravity != def.Gravity || cfg.Position != def.Position || cfg.DepthMax != def.DepthMax {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := sim.LoadConfig(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{mass:"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := sim.LoadConfig(bad); err == nil {
		t.Fatalf("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"gravity": -1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := sim.LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "gravity") {
		t.Fatalf("expected validation error, got %v", err)
	}
}
