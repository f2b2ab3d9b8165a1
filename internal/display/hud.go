package display

import (
	"fmt"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

// TelemetryLines formats the HUD panel. The angle is shown relative to
// hover so level flight reads zero.
func TelemetryLines(s sim.Snapshot) []string {
	return []string{
		fmt.Sprintf("Angle: %+.2f°", sim.RadToDeg(s.Angle-sim.HoverAngle)),
		fmt.Sprintf("Thrust: %.2f N", s.Thrust),
		fmt.Sprintf("Vel X: %.2f m/s", s.VX),
		fmt.Sprintf("Vel Z: %.2f m/s", s.VZ),
		fmt.Sprintf("Vel Y: %.2f m/s", s.VY),
	}
}

// StatusLine is the one-line summary printed by the headless runner and
// the viewer's console.
func StatusLine(s sim.Snapshot) string {
	return fmt.Sprintf("t=%.2fs x=%.3f z=%.3f y=%.2f angle=%+.2f° thrust=%.1fN vx=%.3f vz=%.3f",
		s.Time, s.X, s.Z, s.Y, sim.RadToDeg(s.Angle-sim.HoverAngle), s.Thrust, s.VX, s.VZ)
}
