// Package display holds the window-independent half of the viewer:
// world-to-screen mapping, HUD text and key bindings.
package display

import (
	"math"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

// Point is a screen position in pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Viewport maps simulation meters onto a fixed-size window.
type Viewport struct {
	Width, Height  int
	PixelsPerMeter float64
	// BodySize is the vehicle's drawn radius in meters at depth scale 1.
	BodySize float64
	// ThrustScale is pixels per newton of thrust at depth scale 1.
	ThrustScale float64
	GroundZ     float64
}

func NewViewport() Viewport {
	return Viewport{
		Width:          800,
		Height:         600,
		PixelsPerMeter: 100,
		BodySize:       0.4,
		ThrustScale:    0.1,
		GroundZ:        0.1,
	}
}

// DepthScale shrinks the vehicle as it moves away along depth.
func DepthScale(y float64) float64 {
	return sim.Clamp(3.0/(y+0.1), 0.5, 1.5)
}

// ToScreen converts a plane position to pixels, flipping the vertical.
func (v Viewport) ToScreen(x, z float64) Point {
	return Point{X: x * v.PixelsPerMeter, Y: float64(v.Height) - z*v.PixelsPerMeter}
}

// Body returns the three corners of the vehicle triangle.
func (v Viewport) Body(s sim.Snapshot) [3]Point {
	size := v.BodySize * v.PixelsPerMeter * DepthScale(s.Y)
	px, pz := s.X*v.PixelsPerMeter, s.Z*v.PixelsPerMeter
	var pts [3]Point
	for i, a := range [3]float64{s.Angle, s.Angle + 2.5, s.Angle - 2.5} {
		pts[i] = Point{
			X: px + math.Cos(a)*size,
			Y: float64(v.Height) - (pz + math.Sin(a)*size),
		}
	}
	return pts
}

// Thrust returns the start and end of the thrust vector, drawn along
// the body axis with length proportional to thrust.
func (v Viewport) Thrust(s sim.Snapshot) (from, to Point) {
	length := s.Thrust * v.ThrustScale * DepthScale(s.Y)
	px, pz := s.X*v.PixelsPerMeter, s.Z*v.PixelsPerMeter
	from = Point{X: px, Y: float64(v.Height) - pz}
	to = Point{
		X: px - math.Cos(s.Angle)*length,
		Y: float64(v.Height) - (pz - math.Sin(s.Angle)*length),
	}
	return from, to
}

// GroundLine is the screen row of the ground floor.
func (v Viewport) GroundLine() float64 {
	return float64(v.Height) - math.Floor(v.GroundZ*v.PixelsPerMeter)
}
