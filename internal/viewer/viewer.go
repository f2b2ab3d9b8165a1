//go:build !test
// +build !test

package viewer

import (
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/display"
	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

var (
	backgroundColor = rgb(30, 30, 30)
	droneColor      = rgb(0, 200, 255)
	thrustColor     = rgb(255, 100, 100)
	groundColor     = rgb(100, 255, 100)
)

type Viewer struct {
	clock    *sim.Clock
	renderer *Renderer
	input    *InputHandler
	viewport display.Viewport
	acc      *sim.Accumulator
	log      *zap.Logger

	// StatusEvery is the wall-clock period of console status lines.
	// Zero disables them.
	StatusEvery time.Duration
}

// New builds a viewer around s. It must be called on the thread that
// owns the current GL context.
func New(s *sim.Simulation, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		renderer:    NewRenderer(),
		input:       NewInputHandler(),
		viewport:    display.NewViewport(),
		acc:         sim.NewAccumulator(),
		log:         log,
		StatusEvery: 2 * time.Second,
	}
	v.clock = &sim.Clock{
		Sim:   s,
		Input: func(s *sim.Simulation) { v.input.Controls().Apply(s) },
	}
	return v
}

func (v *Viewer) Run(window *glfw.Window) {
	v.input.SetupCallbacks(window)

	v.log.Info("viewer started",
		zap.String("controls", "arrows: torque/vertical force, A/D: horizontal force, W/S: depth, R: reset"))

	prev := time.Now()
	statusTimer := time.Duration(0)

	for !window.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now

		snap := v.clock.Sim.Snapshot()
		for n := v.acc.Frame(frame); n > 0; n-- {
			snap = v.clock.Tick()
		}

		v.render(window, snap)

		statusTimer += frame
		if v.StatusEvery > 0 && statusTimer >= v.StatusEvery {
			v.log.Info(display.StatusLine(snap))
			statusTimer = 0
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (v *Viewer) render(window *glfw.Window, snap sim.Snapshot) {
	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(backgroundColor.R, backgroundColor.G, backgroundColor.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r := v.renderer
	vp := v.viewport
	r.Begin(vp.Width, vp.Height)

	ground := vp.GroundLine()
	r.Line(display.Point{X: 0, Y: ground}, display.Point{X: float64(vp.Width), Y: ground}, 2, groundColor)

	body := vp.Body(snap)
	r.Triangle(body[0], body[1], body[2], droneColor)

	from, to := vp.Thrust(snap)
	r.Line(from, to, 3, thrustColor)
	r.Circle(to, 5, thrustColor)

	r.drawTelemetry(display.TelemetryLines(snap))
	r.Flush()
}
