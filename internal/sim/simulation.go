package sim

import (
	"time"

	"go.uber.org/zap"
)

// TickRate is the fixed simulation rate in Hz.
const TickRate = 60

// TickInterval is the fixed integration step. The core never looks at
// the wall clock; if the driver falls behind, simulated time drifts.
const TickInterval = time.Second / TickRate

// Snapshot is the read-only view handed to collaborators once per tick.
type Snapshot struct {
	Tick uint64
	Time float64 // simulated seconds

	X, Z, Y    float64
	VX, VZ, VY float64

	Angle           float64
	AngularVelocity float64
	Thrust          float64

	// Intermediate values threaded between the loops this tick.
	AngleSetpoint float64
	AngularAccel  float64
	Disturbance   Disturbance

	OnGround  bool
	Sanitized bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for resets and sanitation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// Simulation owns one vehicle, its three control loops and its
// disturbance state. It is not safe for concurrent use.
type Simulation struct {
	cfg Config
	log *zap.Logger

	state    VehicleState
	lastGood VehicleState

	disturbances *DisturbanceAccumulator
	position     *PositionController
	attitude     *AttitudeController
	altitude     *AltitudeController
	physics      Integrator

	ticks     uint64
	sanitized uint64
	snapshot  Snapshot
}

// New builds a simulation at InitialState. cfg is used as given; call
// cfg.Validate first when it comes from outside.
func New(cfg Config, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:          cfg,
		log:          zap.NewNop(),
		disturbances: NewDisturbanceAccumulator(cfg.DisturbanceDecay),
		position:     NewPositionController(cfg),
		attitude:     NewAttitudeController(cfg),
		altitude:     NewAltitudeController(cfg),
		physics:      NewIntegrator(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = InitialState()
	s.lastGood = s.state
	s.snapshot = s.makeSnapshot(Actuation{Thrust: cfg.HoverThrust()}, s.state.Angle, false)
	return s
}

// Step advances one tick. Loop order is fixed: X, then attitude (fed by
// the X output), then Z, then physics.
func (s *Simulation) Step() Snapshot {
	dt := TickInterval
	pre := s.state

	applied := s.disturbances.Sample()
	setpoint := s.position.Update(s.cfg.TargetX, pre.Position.X, pre.Velocity.X, dt)
	accel := s.attitude.Update(setpoint, pre.Angle, dt)
	thrust := s.altitude.Update(s.cfg.TargetZ, pre.Position.Z, dt)

	act := Actuation{Thrust: thrust, AngularAccel: accel, Disturbance: applied}
	next, grounded := s.physics.Step(pre, act, dt)

	s.ticks++
	sanitized := false
	if next.Finite() {
		s.lastGood = next
	} else if s.cfg.Sanitize {
		s.sanitized++
		s.log.Warn("non-finite state replaced with last finite state",
			zap.Uint64("tick", s.ticks),
			zap.Float64("x", next.Position.X),
			zap.Float64("z", next.Position.Z),
			zap.Float64("angle", next.Angle),
			zap.Uint64("sanitized_total", s.sanitized),
		)
		// The loop memories and pending disturbances may hold the same
		// non-finite values.
		s.disturbances.Clear()
		s.position.Reset()
		s.attitude.Reset()
		s.altitude.Reset()
		next = s.lastGood
		sanitized = true
	}
	s.state = next

	s.snapshot = s.makeSnapshot(act, setpoint, grounded)
	s.snapshot.Sanitized = sanitized
	return s.snapshot
}

// Reset restores InitialState, aligns the angle setpoint with it and
// clears disturbances. Controller memories survive unless
// Config.ResetControllers is set.
func (s *Simulation) Reset() {
	s.state = InitialState()
	s.lastGood = s.state
	s.disturbances.Clear()
	if s.cfg.ResetControllers {
		s.position.Reset()
		s.attitude.Reset()
		s.altitude.Reset()
	}
	s.snapshot = s.makeSnapshot(Actuation{Thrust: s.snapshot.Thrust}, s.state.Angle, false)
	s.log.Debug("simulation reset",
		zap.Uint64("tick", s.ticks),
		zap.Bool("controllers_cleared", s.cfg.ResetControllers),
	)
}

// Inject adds a disturbance delta for the coming ticks.
func (s *Simulation) Inject(d Disturbance) { s.disturbances.Inject(d) }

func (s *Simulation) InjectForceX(delta float64) { s.Inject(Disturbance{Fx: delta}) }
func (s *Simulation) InjectForceZ(delta float64) { s.Inject(Disturbance{Fz: delta}) }
func (s *Simulation) InjectTorque(delta float64) { s.Inject(Disturbance{Torque: delta}) }

// NudgeDepth adds delta straight to the depth velocity.
func (s *Simulation) NudgeDepth(delta float64) { s.state.Velocity.Y += delta }

// Disturbance returns the accumulated, not yet applied disturbance.
func (s *Simulation) Disturbance() Disturbance { return s.disturbances.Current() }

func (s *Simulation) State() VehicleState { return s.state }
func (s *Simulation) Config() Config      { return s.cfg }
func (s *Simulation) Ticks() uint64       { return s.ticks }

// SanitizedTicks counts ticks whose state had to be replaced.
func (s *Simulation) SanitizedTicks() uint64 { return s.sanitized }

// Snapshot returns the view published by the last Step or Reset.
func (s *Simulation) Snapshot() Snapshot { return s.snapshot }

// LoopStates returns the X, attitude and Z loop memories.
func (s *Simulation) LoopStates() (x, angle, z LoopState) {
	return s.position.State(), s.attitude.State(), s.altitude.State()
}

func (s *Simulation) makeSnapshot(act Actuation, setpoint float64, grounded bool) Snapshot {
	st := s.state
	return Snapshot{
		Tick:            s.ticks,
		Time:            float64(s.ticks) * TickInterval.Seconds(),
		X:               st.Position.X,
		Z:               st.Position.Z,
		Y:               st.Position.Y,
		VX:              st.Velocity.X,
		VZ:              st.Velocity.Z,
		VY:              st.Velocity.Y,
		Angle:           st.Angle,
		AngularVelocity: st.AngularVelocity,
		Thrust:          act.Thrust,
		AngleSetpoint:   setpoint,
		AngularAccel:    act.AngularAccel,
		Disturbance:     act.Disturbance,
		OnGround:        grounded,
	}
}
