package sim

// Disturbance is an additive force/torque perturbation.
type Disturbance struct {
	Fx     float64 // N
	Fz     float64 // N
	Torque float64 // rad/s², added to the commanded angular acceleration
}

// Add returns the component-wise sum.
func (d Disturbance) Add(o Disturbance) Disturbance {
	return Disturbance{Fx: d.Fx + o.Fx, Fz: d.Fz + o.Fz, Torque: d.Torque + o.Torque}
}

// Scale returns every component multiplied by k.
func (d Disturbance) Scale(k float64) Disturbance {
	return Disturbance{Fx: d.Fx * k, Fz: d.Fz * k, Torque: d.Torque * k}
}

// DisturbanceAccumulator collects injected deltas and decays them
// geometrically once per tick. Sustained input has to be re-injected
// every tick to hold a steady force.
type DisturbanceAccumulator struct {
	current Disturbance
	decay   float64
}

func NewDisturbanceAccumulator(decay float64) *DisturbanceAccumulator {
	return &DisturbanceAccumulator{decay: decay}
}

// Inject accumulates a delta. Magnitudes are not bounded.
func (a *DisturbanceAccumulator) Inject(delta Disturbance) {
	a.current = a.current.Add(delta)
}

// Current returns the accumulated values without decaying them.
func (a *DisturbanceAccumulator) Current() Disturbance { return a.current }

// Sample returns the values to apply this tick and then decays the
// accumulator, whether or not anything was injected.
func (a *DisturbanceAccumulator) Sample() Disturbance {
	d := a.current
	a.current = a.current.Scale(a.decay)
	return d
}

// Clear zeroes every component.
func (a *DisturbanceAccumulator) Clear() { a.current = Disturbance{} }
