package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

// Recorder keeps every snapshot of a run for plotting. Every keeps one
// out of Every snapshots; zero or one keeps all of them.
type Recorder struct {
	Every int

	seen    int
	samples []sim.Snapshot
}

func (r *Recorder) Record(s sim.Snapshot) {
	r.seen++
	if r.Every > 1 && (r.seen-1)%r.Every != 0 {
		return
	}
	r.samples = append(r.samples, s)
}

func (r *Recorder) Len() int { return len(r.samples) }

// Samples returns the recorded snapshots in order.
func (r *Recorder) Samples() []sim.Snapshot { return r.samples }

type series struct {
	name  string
	value func(sim.Snapshot) float64
}

// SavePlots writes position.png, attitude.png and thrust.png into dir.
func (r *Recorder) SavePlots(dir string) error {
	if len(r.samples) == 0 {
		return errors.New("save plots: no samples recorded")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save plots: %w", err)
	}

	plots := []struct {
		file, title, ylabel string
		lines               []series
	}{
		{"position.png", "Position", "m", []series{
			{"x", func(s sim.Snapshot) float64 { return s.X }},
			{"z", func(s sim.Snapshot) float64 { return s.Z }},
			{"y (depth)", func(s sim.Snapshot) float64 { return s.Y }},
		}},
		{"attitude.png", "Attitude offset from hover", "deg", []series{
			{"angle", func(s sim.Snapshot) float64 { return sim.RadToDeg(s.Angle - sim.HoverAngle) }},
			{"setpoint", func(s sim.Snapshot) float64 { return sim.RadToDeg(s.AngleSetpoint - sim.HoverAngle) }},
		}},
		{"thrust.png", "Thrust", "N", []series{
			{"thrust", func(s sim.Snapshot) float64 { return s.Thrust }},
		}},
	}
	for _, spec := range plots {
		if err := r.savePlot(filepath.Join(dir, spec.file), spec.title, spec.ylabel, spec.lines); err != nil {
			return fmt.Errorf("save plots %s: %w", spec.file, err)
		}
	}
	return nil
}

func (r *Recorder) savePlot(path, title, ylabel string, lines []series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for i, l := range lines {
		pts := make(plotter.XYs, len(r.samples))
		for j, s := range r.samples {
			pts[j].X = s.Time
			pts[j].Y = l.value(s)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(l.name, line)
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
