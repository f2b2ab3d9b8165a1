package display

import (
	"math"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

// Per-tick deltas applied while a key is held.
const (
	TorqueStep = 200.0 * math.Pi / 180.0 // rad/s²
	ForceStep  = 50.0                    // N
	DepthStep  = 0.2                     // m/s
)

// Controls is the set of keys held during one tick.
type Controls struct {
	TorqueLeft, TorqueRight bool // Left / Right arrows
	ForceUp, ForceDown      bool // Up / Down arrows
	ForceLeft, ForceRight   bool // A / D
	DepthNear, DepthFar     bool // W / S
	Reset                   bool // R, edge-triggered by the caller
}

// Disturbance returns the delta the held keys inject this tick.
func (c Controls) Disturbance() sim.Disturbance {
	var d sim.Disturbance
	if c.TorqueLeft {
		d.Torque += TorqueStep
	}
	if c.TorqueRight {
		d.Torque -= TorqueStep
	}
	if c.ForceUp {
		d.Fz += ForceStep
	}
	if c.ForceDown {
		d.Fz -= ForceStep
	}
	if c.ForceLeft {
		d.Fx -= ForceStep
	}
	if c.ForceRight {
		d.Fx += ForceStep
	}
	return d
}

// DepthNudge returns the depth velocity change for this tick.
func (c Controls) DepthNudge() float64 {
	n := 0.0
	if c.DepthNear {
		n -= DepthStep
	}
	if c.DepthFar {
		n += DepthStep
	}
	return n
}

// Apply feeds the controls into s. A reset is applied first, as a
// window event, and the held-key deltas after it.
func (c Controls) Apply(s *sim.Simulation) {
	if c.Reset {
		s.Reset()
	}
	if d := c.Disturbance(); d != (sim.Disturbance{}) {
		s.Inject(d)
	}
	if n := c.DepthNudge(); n != 0 {
		s.NudgeDepth(n)
	}
}
