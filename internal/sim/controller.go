package sim

import (
	"time"

	"go.einride.tech/pid"
)

// LoopState is the memory one PID loop carries between ticks.
type LoopState struct {
	Integral      float64
	PreviousError float64
}

// PositionController is the outer X loop. It turns horizontal error
// into an attitude setpoint bounded to ±MaxTilt around HoverAngle.
type PositionController struct {
	Gains         Gains
	IntegralLimit float64
	MaxTilt       float64

	state LoopState
}

func NewPositionController(cfg Config) *PositionController {
	return &PositionController{
		Gains:         cfg.Position,
		IntegralLimit: cfg.PositionIntegralLimit,
		MaxTilt:       cfg.MaxTilt(),
	}
}

// Update returns the attitude setpoint for this tick. The integral is
// dropped on an error zero-crossing before the new term is added, then
// clamped. The rate term uses -velocity instead of an error difference.
func (c *PositionController) Update(target, position, velocity float64, dt time.Duration) float64 {
	err := target - position
	if err*c.state.PreviousError < 0 {
		c.state.Integral = 0
	}
	c.state.Integral = Clamp(c.state.Integral+err*dt.Seconds(), -c.IntegralLimit, c.IntegralLimit)
	c.state.PreviousError = err

	offset := c.Gains.Kp*err + c.Gains.Kd*(-velocity) + c.Gains.Ki*c.state.Integral
	return HoverAngle + Clamp(offset, -c.MaxTilt, c.MaxTilt)
}

func (c *PositionController) State() LoopState { return c.state }
func (c *PositionController) Reset()           { c.state = LoopState{} }

// AttitudeController is the middle loop: angle setpoint to commanded
// angular acceleration. Its integral is unbounded unless IntegralLimit
// is positive.
type AttitudeController struct {
	IntegralLimit float64

	pid pid.Controller
}

func NewAttitudeController(cfg Config) *AttitudeController {
	c := &AttitudeController{pid: newLoop(cfg.Attitude)}
	if cfg.AntiWindup {
		c.IntegralLimit = cfg.IntegralLimit
	}
	return c
}

// Update returns the commanded angular acceleration (rad/s²).
func (c *AttitudeController) Update(setpoint, angle float64, dt time.Duration) float64 {
	return updateLoop(&c.pid, setpoint, angle, dt, c.IntegralLimit)
}

func (c *AttitudeController) State() LoopState { return loopState(&c.pid) }
func (c *AttitudeController) Reset()           { c.pid.State = pid.ControllerState{} }

// AltitudeController is the independent Z loop. The PID correction is
// biased by the hover thrust and clamped to [0, MaxThrust].
type AltitudeController struct {
	IntegralLimit float64
	HoverThrust   float64
	MaxThrust     float64

	pid pid.Controller
}

func NewAltitudeController(cfg Config) *AltitudeController {
	c := &AltitudeController{
		HoverThrust: cfg.HoverThrust(),
		MaxThrust:   cfg.MaxThrust(),
		pid:         newLoop(cfg.Altitude),
	}
	if cfg.AntiWindup {
		c.IntegralLimit = cfg.IntegralLimit
	}
	return c
}

// Update returns the thrust magnitude (N). Thrust is never negative.
func (c *AltitudeController) Update(target, altitude float64, dt time.Duration) float64 {
	correction := updateLoop(&c.pid, target, altitude, dt, c.IntegralLimit)
	return Clamp(c.HoverThrust+correction, 0, c.MaxThrust)
}

func (c *AltitudeController) State() LoopState { return loopState(&c.pid) }
func (c *AltitudeController) Reset()           { c.pid.State = pid.ControllerState{} }

func newLoop(g Gains) pid.Controller {
	return pid.Controller{
		Config: pid.ControllerConfig{
			ProportionalGain: g.Kp,
			IntegralGain:     g.Ki,
			DerivativeGain:   g.Kd,
		},
	}
}

// updateLoop runs one finite-difference PID step. With limit > 0 the
// integral is clamped afterwards and the signal corrected to match.
func updateLoop(c *pid.Controller, reference, actual float64, dt time.Duration, limit float64) float64 {
	c.Update(pid.ControllerInput{
		ReferenceSignal:  reference,
		ActualSignal:     actual,
		SamplingInterval: dt,
	})
	if limit > 0 {
		raw := c.State.ControlErrorIntegral
		if clamped := Clamp(raw, -limit, limit); clamped != raw {
			c.State.ControlErrorIntegral = clamped
			c.State.ControlSignal += c.Config.IntegralGain * (clamped - raw)
		}
	}
	return c.State.ControlSignal
}

func loopState(c *pid.Controller) LoopState {
	return LoopState{
		Integral:      c.State.ControlErrorIntegral,
		PreviousError: c.State.ControlError,
	}
}
