package sim

import (
	"context"
	"time"
)

// Clock drives a Simulation one tick at a time. Input runs before each
// tick so collaborators can inject deltas; OnTick receives the published
// snapshot. Either may be nil.
type Clock struct {
	Sim    *Simulation
	Input  func(s *Simulation)
	OnTick func(Snapshot)
}

// Tick runs a single input/step/publish pass.
func (c *Clock) Tick() Snapshot {
	if c.Input != nil {
		c.Input(c.Sim)
	}
	snap := c.Sim.Step()
	if c.OnTick != nil {
		c.OnTick(snap)
	}
	return snap
}

// Advance runs n ticks back to back, without pacing.
func (c *Clock) Advance(n int) Snapshot {
	snap := c.Sim.Snapshot()
	for i := 0; i < n; i++ {
		snap = c.Tick()
	}
	return snap
}

// Run paces ticks at TickInterval on the wall clock until ticks have
// been performed (ticks <= 0 means no limit) or ctx is done. Missed
// ticker deadlines are dropped, not caught up.
func (c *Clock) Run(ctx context.Context, ticks int) (int, error) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	performed := 0
	for ticks <= 0 || performed < ticks {
		select {
		case <-ctx.Done():
			return performed, ctx.Err()
		case <-ticker.C:
			c.Tick()
			performed++
		}
	}
	return performed, nil
}

// Accumulator converts variable frame times into whole fixed ticks for a
// render loop.
type Accumulator struct {
	// MaxFrame clamps a single frame to avoid a spiral of death on stalls.
	MaxFrame time.Duration
	// MaxSteps caps the ticks run for one frame.
	MaxSteps int

	acc time.Duration
}

func NewAccumulator() *Accumulator {
	return &Accumulator{MaxFrame: time.Second / 4, MaxSteps: 5}
}

// Frame adds the elapsed frame time and returns how many ticks are due.
// The caller runs exactly that many ticks.
func (a *Accumulator) Frame(frame time.Duration) int {
	if frame < 0 {
		frame = 0
	}
	if a.MaxFrame > 0 && frame > a.MaxFrame {
		frame = a.MaxFrame
	}
	a.acc += frame

	steps := 0
	for a.acc >= TickInterval && (a.MaxSteps <= 0 || steps < a.MaxSteps) {
		a.acc -= TickInterval
		steps++
	}
	return steps
}

// Alpha is the fraction of a tick left over in the accumulator.
func (a *Accumulator) Alpha() float64 {
	return Clamp(float64(a.acc)/float64(TickInterval), 0, 1)
}
