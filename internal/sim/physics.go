package sim

import (
	"math"
	"time"
)

// Actuation is everything the controllers and the disturbance model
// hand to one integration step.
type Actuation struct {
	Thrust       float64 // N along the body axis
	AngularAccel float64 // commanded, rad/s²
	Disturbance  Disturbance
}

// Integrator advances VehicleState with explicit Euler. Angular motion
// is driven straight by the commanded acceleration; there is no inertia
// term.
type Integrator struct {
	Mass          float64
	Gravity       float64
	PlanarDamping float64
	DepthDamping  float64
	DepthMin      float64
	DepthMax      float64
	GroundZ       float64
}

func NewIntegrator(cfg Config) Integrator {
	return Integrator{
		Mass:          cfg.Mass,
		Gravity:       cfg.Gravity,
		PlanarDamping: cfg.PlanarDamping,
		DepthDamping:  cfg.DepthDamping,
		DepthMin:      cfg.DepthMin,
		DepthMax:      cfg.DepthMax,
		GroundZ:       cfg.GroundZ,
	}
}

// Step returns the next state and whether it touched the ground.
func (p Integrator) Step(s VehicleState, in Actuation, dt time.Duration) (VehicleState, bool) {
	h := dt.Seconds()

	s.AngularVelocity += (in.AngularAccel + in.Disturbance.Torque) * h
	s.Angle += s.AngularVelocity * h

	// Thrust acts along (-cos, -sin) of the updated attitude.
	force := Vec3{
		X: -math.Cos(s.Angle)*in.Thrust + in.Disturbance.Fx,
		Z: -math.Sin(s.Angle)*in.Thrust + in.Disturbance.Fz - p.Mass*p.Gravity,
	}
	accel := force.Mul(1.0 / p.Mass)

	s.Velocity = s.Velocity.Add(accel.Mul(h))
	s.Position = s.Position.Add(s.Velocity.Mul(h))
	s.Position.Y = Clamp(s.Position.Y, p.DepthMin, p.DepthMax)

	s.Velocity.X *= p.PlanarDamping
	s.Velocity.Z *= p.PlanarDamping
	s.Velocity.Y *= p.DepthDamping

	// Inelastic ground contact
	grounded := false
	if s.Position.Z < p.GroundZ {
		s.Position.Z = p.GroundZ
		s.Velocity.Z = 0
		grounded = true
	}
	return s, grounded
}
