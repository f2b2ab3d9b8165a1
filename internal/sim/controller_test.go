package sim_test

import (
	"math"
	"testing"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

func TestPositionIntegralResetsOnZeroCrossing(t *testing.T) {
	c := sim.NewPositionController(sim.DefaultConfig())
	dt := sim.TickInterval
	for i := 0; i < 10; i++ {
		c.Update(4, 3, 0, dt) // error +1
	}
	if c.State().Integral <= 0 {
		t.Fatalf("expected positive integral, got %v", c.State().Integral)
	}

	c.Update(4, 4.5, 0, dt) // error -0.5
	if got, want := c.State().Integral, -0.5*dt.Seconds(); math.Abs(got-want) > 1e-15 {
		t.Fatalf("integral after crossing: got %v, want %v", got, want)
	}
	if got := c.State().PreviousError; got != -0.5 {
		t.Fatalf("previous error: got %v", got)
	}
}

func TestPositionIntegralIsBounded(t *testing.T) {
	c := sim.NewPositionController(sim.DefaultConfig())
	for i := 0; i < 100; i++ {
		c.Update(104, 4, 0, sim.TickInterval)
	}
	if got := c.State().Integral; got != 1 {
		t.Fatalf("expected integral clamped to 1, got %v", got)
	}
}

func TestPositionSetpointIsTiltLimited(t *testing.T) {
	cfg := sim.DefaultConfig()
	c := sim.NewPositionController(cfg)
	for _, target := range []float64{1000, -1000} {
		c.Reset()
		sp := c.Update(target, 4, 0, sim.TickInterval)
		if off := math.Abs(sp - sim.HoverAngle); math.Abs(off-cfg.MaxTilt()) > 1e-12 {
			t.Fatalf("target %v: setpoint offset %v, want %v", target, off, cfg.MaxTilt())
		}
	}
	// Negative gains: a target to the right tilts below HoverAngle.
	c.Reset()
	if sp := c.Update(5, 4, 0, sim.TickInterval); sp >= sim.HoverAngle {
		t.Fatalf("expected setpoint below hover, got %v", sp)
	}
}

func TestPositionDampsVelocity(t *testing.T) {
	c := sim.NewPositionController(sim.DefaultConfig())
	sp := c.Update(4, 4, 1, sim.TickInterval)
	if want := sim.HoverAngle + 0.16; math.Abs(sp-want) > 1e-12 {
		t.Fatalf("rate term: got %v, want %v", sp, want)
	}
}

func TestAltitudeThrustIsClamped(t *testing.T) {
	cfg := sim.DefaultConfig()
	c := sim.NewAltitudeController(cfg)
	if got := c.Update(100, 3, sim.TickInterval); got != cfg.MaxThrust() {
		t.Fatalf("expected max thrust %v, got %v", cfg.MaxThrust(), got)
	}
	c.Reset()
	if got := c.Update(-100, 3, sim.TickInterval); got != 0 {
		t.Fatalf("expected zero thrust, got %v", got)
	}
	c.Reset()
	if got := c.Update(3, 3, sim.TickInterval); math.Abs(got-cfg.HoverThrust()) > 1e-12 {
		t.Fatalf("expected hover thrust at target, got %v", got)
	}
}

func TestAttitudeOutput(t *testing.T) {
	cfg := sim.DefaultConfig()
	c := sim.NewAttitudeController(cfg)
	dt := sim.TickInterval
	// First tick: derivative is taken against a zero previous error.
	got := c.Update(0.1, 0, dt)
	want := cfg.Attitude.Kp*0.1 + cfg.Attitude.Kd*0.1/dt.Seconds()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("first tick: got %v, want %v", got, want)
	}
	got = c.Update(0.1, 0, dt)
	if want := cfg.Attitude.Kp * 0.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("steady error: got %v, want %v", got, want)
	}
	if st := c.State(); st.PreviousError != 0.1 {
		t.Fatalf("previous error: got %v", st.PreviousError)
	}
}

func TestAntiWindupClampsInnerLoops(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Attitude.Ki = 5
	cfg.Altitude.Ki = 5
	cfg.IntegralLimit = 0.1

	run := func(cfg sim.Config) (attitude, altitude sim.LoopState) {
		a := sim.NewAttitudeController(cfg)
		z := sim.NewAltitudeController(cfg)
		for i := 0; i < 120; i++ {
			a.Update(1, 0, sim.TickInterval)
			z.Update(4, 3, sim.TickInterval)
		}
		return a.State(), z.State()
	}

	a, z := run(cfg)
	if a.Integral < 1.9 || z.Integral < 1.9 {
		t.Fatalf("expected unbounded integrals without anti-windup, got %v %v", a.Integral, z.Integral)
	}

	cfg.AntiWindup = true
	a, z = run(cfg)
	if a.Integral != 0.1 || z.Integral != 0.1 {
		t.Fatalf("expected integrals clamped to 0.1, got %v %v", a.Integral, z.Integral)
	}

	c := sim.NewAttitudeController(cfg)
	for i := 0; i < 120; i++ {
		c.Update(1, 0, sim.TickInterval)
	}
	if got, want := c.Update(1, 0, sim.TickInterval), cfg.Attitude.Kp+cfg.Attitude.Ki*0.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("clamped output: got %v, want %v", got, want)
	}
}

func TestControllerReset(t *testing.T) {
	cfg := sim.DefaultConfig()
	x := sim.NewPositionController(cfg)
	a := sim.NewAttitudeController(cfg)
	x.Update(5, 4, 0, sim.TickInterval)
	a.Update(1, 0, sim.TickInterval)
	x.Reset()
	a.Reset()
	if x.State() != (sim.LoopState{}) || a.State() != (sim.LoopState{}) {
		t.Fatalf("expected zero state after reset, got %+v %+v", x.State(), a.State())
	}
}
