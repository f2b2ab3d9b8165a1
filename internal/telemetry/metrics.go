// Package telemetry exports simulation snapshots as prometheus metrics
// and as trace plots.
package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
)

// Metrics mirrors the latest snapshot into prometheus gauges.
type Metrics struct {
	registry *prometheus.Registry

	position    *prometheus.GaugeVec
	velocity    *prometheus.GaugeVec
	angle       prometheus.Gauge
	setpoint    prometheus.Gauge
	thrust      prometheus.Gauge
	disturbance *prometheus.GaugeVec
	ticks       prometheus.Counter
	sanitized   prometheus.Counter
}

// NewMetrics registers the drone collectors on reg.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: reg,
		position: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drone_position_meters",
			Help: "Vehicle position per axis (x horizontal, z vertical, y depth)",
		}, []string{"axis"}),
		velocity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drone_velocity_mps",
			Help: "Vehicle velocity per axis",
		}, []string{"axis"}),
		angle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drone_angle_radians",
			Help: "Vehicle attitude angle",
		}),
		setpoint: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drone_angle_setpoint_radians",
			Help: "Attitude setpoint produced by the position loop",
		}),
		thrust: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drone_thrust_newtons",
			Help: "Commanded thrust magnitude",
		}),
		disturbance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drone_disturbance",
			Help: "Disturbance applied on the last tick per component",
		}, []string{"component"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drone_ticks_total",
			Help: "Simulation ticks observed",
		}),
		sanitized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drone_sanitized_ticks_total",
			Help: "Ticks whose non-finite state was replaced",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.position, m.velocity, m.angle, m.setpoint, m.thrust,
		m.disturbance, m.ticks, m.sanitized,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics register: %w", err)
		}
	}
	return m, nil
}

// Observe copies a snapshot into the gauges.
func (m *Metrics) Observe(s sim.Snapshot) {
	m.position.WithLabelValues("x").Set(s.X)
	m.position.WithLabelValues("z").Set(s.Z)
	m.position.WithLabelValues("y").Set(s.Y)
	m.velocity.WithLabelValues("x").Set(s.VX)
	m.velocity.WithLabelValues("z").Set(s.VZ)
	m.velocity.WithLabelValues("y").Set(s.VY)
	m.angle.Set(s.Angle)
	m.setpoint.Set(s.AngleSetpoint)
	m.thrust.Set(s.Thrust)
	m.disturbance.WithLabelValues("fx").Set(s.Disturbance.Fx)
	m.disturbance.WithLabelValues("fz").Set(s.Disturbance.Fz)
	m.disturbance.WithLabelValues("torque").Set(s.Disturbance.Torque)
	m.ticks.Inc()
	if s.Sanitized {
		m.sanitized.Inc()
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
