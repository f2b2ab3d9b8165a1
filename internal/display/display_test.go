package display_test

import (
	"math"
	"strings"
	"testing"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/display"
	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestToScreenFlipsVertical(t *testing.T) {
	v := display.NewViewport()
	p := v.ToScreen(4, 3)
	if !near(p.X, 400) || !near(p.Y, 300) {
		t.Fatalf("ToScreen(4,3) = %+v", p)
	}
	if p := v.ToScreen(0, 0); !near(p.Y, 600) {
		t.Fatalf("origin maps to bottom, got %+v", p)
	}
	if got := v.GroundLine(); got != 590 {
		t.Fatalf("ground line: %v", got)
	}
}

func TestDepthScaleClamp(t *testing.T) {
	cases := []struct{ y, want float64 }{
		{0.5, 1.5},
		{2.9, 1.0},
		{5.0, 3.0 / 5.1},
		{100, 0.5},
	}
	for _, c := range cases {
		if got := display.DepthScale(c.y); !near(got, c.want) {
			t.Fatalf("DepthScale(%v) = %v, want %v", c.y, got, c.want)
		}
	}
}

func TestBodyAndThrustAtHover(t *testing.T) {
	v := display.NewViewport()
	s := sim.Snapshot{X: 4, Z: 3, Y: 2.9, Angle: sim.HoverAngle, Thrust: 100}

	body := v.Body(s)
	// The nose points down the screen at hover, 40 px below the center.
	if !near(body[0].X, 400) || !near(body[0].Y, 340) {
		t.Fatalf("nose at %+v", body[0])
	}
	if !near(body[1].Y, body[2].Y) || !near(body[1].X-400, 400-body[2].X) {
		t.Fatalf("wings not symmetric: %+v %+v", body[1], body[2])
	}

	from, to := v.Thrust(s)
	if !near(from.X, 400) || !near(from.Y, 300) {
		t.Fatalf("thrust origin %+v", from)
	}
	// Upward thrust draws upward on screen.
	if !near(to.X, 400) || !near(to.Y, 290) {
		t.Fatalf("thrust tip %+v", to)
	}
}

func TestTelemetryLines(t *testing.T) {
	s := sim.Snapshot{Angle: sim.HoverAngle + sim.DegToRad(1.5), Thrust: 98.1, VX: 0.25, VZ: -1, VY: 0}
	lines := display.TelemetryLines(s)
	want := []string{
		"Angle: +1.50°",
		"Thrust: 98.10 N",
		"Vel X: 0.25 m/s",
		"Vel Z: -1.00 m/s",
		"Vel Y: 0.00 m/s",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
	if st := display.StatusLine(s); !strings.Contains(st, "thrust=98.1N") {
		t.Fatalf("status line %q", st)
	}
}

func TestControlsDisturbance(t *testing.T) {
	c := display.Controls{TorqueLeft: true, ForceDown: true, ForceRight: true}
	d := c.Disturbance()
	if d.Torque != display.TorqueStep || d.Fz != -display.ForceStep || d.Fx != display.ForceStep {
		t.Fatalf("unexpected disturbance %+v", d)
	}
	opposed := display.Controls{TorqueLeft: true, TorqueRight: true, ForceLeft: true, ForceRight: true}
	if opposed.Disturbance() != (sim.Disturbance{}) {
		t.Fatalf("opposed keys should cancel")
	}
	if n := (display.Controls{DepthNear: true}).DepthNudge(); n != -display.DepthStep {
		t.Fatalf("depth nudge %v", n)
	}
}

func TestControlsApply(t *testing.T) {
	s := sim.New(sim.DefaultConfig())
	display.Controls{ForceUp: true, DepthFar: true}.Apply(s)
	if s.Disturbance().Fz != display.ForceStep {
		t.Fatalf("force not injected: %+v", s.Disturbance())
	}
	if s.State().Velocity.Y != display.DepthStep {
		t.Fatalf("depth not nudged: %+v", s.State().Velocity)
	}

	s.Step()
	display.Controls{Reset: true, TorqueRight: true}.Apply(s)
	if s.State() != sim.InitialState() {
		t.Fatalf("expected reset state")
	}
	// Keys held through the reset still apply after it.
	if s.Disturbance() != (sim.Disturbance{Torque: -display.TorqueStep}) {
		t.Fatalf("unexpected disturbance after reset %+v", s.Disturbance())
	}
}
