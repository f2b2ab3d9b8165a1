package sim

import "math"

// HoverAngle is the attitude at which the thrust axis points straight up.
const HoverAngle = -math.Pi / 2

// VehicleState is the kinematic state advanced once per tick.
type VehicleState struct {
	Position        Vec3    // meters
	Velocity        Vec3    // m/s
	Angle           float64 // radians, HoverAngle is level
	AngularVelocity float64 // rad/s
}

// InitialState is the state a session starts from and returns to on reset.
func InitialState() VehicleState {
	return VehicleState{
		Position: Vec3{X: 4.0, Y: 2.0, Z: 3.0},
		Angle:    HoverAngle,
	}
}

// Finite reports whether the state holds only finite numbers.
func (s VehicleState) Finite() bool {
	return s.Position.Finite() && s.Velocity.Finite() &&
		isFinite(s.Angle) && isFinite(s.AngularVelocity)
}
