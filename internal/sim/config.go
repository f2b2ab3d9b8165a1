package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Gains holds one loop's PID coefficients.
type Gains struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

// Config holds the physical constants, loop tuning and policy flags of a
// session. The zero value is not usable; start from DefaultConfig.
type Config struct {
	Mass    float64 `json:"mass"`    // kg
	Gravity float64 `json:"gravity"` // m/s²

	TargetX float64 `json:"target_x"`
	TargetZ float64 `json:"target_z"`

	Position Gains `json:"position"`
	Attitude Gains `json:"attitude"`
	Altitude Gains `json:"altitude"`

	// PositionIntegralLimit bounds the X-loop integral. Always applied.
	PositionIntegralLimit float64 `json:"position_integral_limit"`
	// MaxTiltDeg bounds the attitude setpoint around HoverAngle.
	MaxTiltDeg float64 `json:"max_tilt_deg"`
	// MaxThrustRatio caps thrust at this multiple of the hover thrust.
	MaxThrustRatio float64 `json:"max_thrust_ratio"`

	DisturbanceDecay float64 `json:"disturbance_decay"`
	PlanarDamping    float64 `json:"planar_damping"`
	DepthDamping     float64 `json:"depth_damping"`
	DepthMin         float64 `json:"depth_min"`
	DepthMax         float64 `json:"depth_max"`
	GroundZ          float64 `json:"ground_z"`

	// AntiWindup clamps the attitude and altitude integrals to
	// ±IntegralLimit as well. The X loop is clamped regardless.
	AntiWindup    bool    `json:"anti_windup"`
	IntegralLimit float64 `json:"integral_limit"`

	// ResetControllers makes Reset clear controller memories too.
	ResetControllers bool `json:"reset_controllers"`

	// Sanitize replaces a non-finite post-tick state with the last
	// finite one.
	Sanitize bool `json:"sanitize"`
}

// DefaultConfig returns the stable default tuning.
//
// A positive offset from HoverAngle rotates the thrust axis toward -X,
// so the position gains are negative.
func DefaultConfig() Config {
	return Config{
		Mass:    10.0,
		Gravity: 9.81,

		TargetX: 4.0,
		TargetZ: 3.0,

		Position: Gains{Kp: -0.3, Ki: -0.05, Kd: -0.16},
		Attitude: Gains{Kp: 150.0, Ki: 0.0, Kd: 20.0},
		Altitude: Gains{Kp: 60.0, Ki: 0.0, Kd: 40.0},

		PositionIntegralLimit: 1.0,
		MaxTiltDeg:            15.0,
		MaxThrustRatio:        2.0,

		DisturbanceDecay: 0.9,
		PlanarDamping:    0.98,
		DepthDamping:     0.95,
		DepthMin:         0.5,
		DepthMax:         5.0,
		GroundZ:          0.1,

		IntegralLimit: 1.0,
	}
}

// LegacyGains returns cfg with the first hand-tuned gain set. With these
// the position loop feeds back with the wrong sign and drifts; the clamps
// still hold.
func LegacyGains(cfg Config) Config {
	cfg.Position = Gains{Kp: 30.0, Ki: 3.0, Kd: 20.0}
	cfg.Attitude = Gains{Kp: 150.0, Ki: 0.0, Kd: 80.0}
	cfg.Altitude = Gains{Kp: 60.0, Ki: 0.0, Kd: 40.0}
	return cfg
}

// HoverThrust is the thrust that balances gravity.
func (c Config) HoverThrust() float64 { return c.Mass * c.Gravity }

// MaxThrust is the upper thrust clamp.
func (c Config) MaxThrust() float64 { return c.MaxThrustRatio * c.HoverThrust() }

// MaxTilt is MaxTiltDeg in radians.
func (c Config) MaxTilt() float64 { return DegToRad(c.MaxTiltDeg) }

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	factor := func(name string, v float64) {
		if !(v > 0 && v <= 1) {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", name, v))
		}
	}
	positive("mass", c.Mass)
	positive("gravity", c.Gravity)
	positive("position_integral_limit", c.PositionIntegralLimit)
	positive("max_tilt_deg", c.MaxTiltDeg)
	positive("max_thrust_ratio", c.MaxThrustRatio)
	if c.AntiWindup {
		positive("integral_limit", c.IntegralLimit)
	}
	factor("disturbance_decay", c.DisturbanceDecay)
	factor("planar_damping", c.PlanarDamping)
	factor("depth_damping", c.DepthDamping)
	if !(c.DepthMin < c.DepthMax) {
		errs = append(errs, fmt.Errorf("depth_min %v must be below depth_max %v", c.DepthMin, c.DepthMax))
	}
	return errors.Join(errs...)
}

// LoadConfig overlays the JSON file at path on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
