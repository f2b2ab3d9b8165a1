package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/display"
	"github.com/amanjot-gulshi/thrust-vector-drone/internal/sim"
	"github.com/amanjot-gulshi/thrust-vector-drone/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "JSON config file overlaid on the defaults")
	steps := flag.Int("steps", 600, "Number of fixed ticks to run (0 uses -duration)")
	duration := flag.Duration("duration", 0, "Simulated time to run if steps=0 (e.g., 10s)")
	realtime := flag.Bool("realtime", false, "Pace ticks on the wall clock")
	scenario := flag.String("scenario", "hover", fmt.Sprintf("Disturbance scenario %v", sim.ScenarioNames()))
	tuning := flag.String("tuning", "default", "Gain set: default or legacy")
	metricsAddr := flag.String("metrics-addr", "", "Serve prometheus metrics on this address (e.g., :9100)")
	plotDir := flag.String("plot", "", "Write trace plots to this directory")
	logEvery := flag.Int("log-every", 60, "Log a status line every N ticks (0 disables)")
	debug := flag.Bool("debug", false, "Development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(*configPath, *tuning)
	if err != nil {
		logger.Fatal("configuration", zap.Error(err))
	}
	sc, err := sim.LookupScenario(*scenario)
	if err != nil {
		logger.Fatal("scenario", zap.Error(err))
	}

	ticks := *steps
	if ticks <= 0 {
		if *duration <= 0 {
			d := time.Second
			duration = &d
		}
		ticks = int(*duration / sim.TickInterval)
	}

	s := sim.New(cfg, sim.WithLogger(logger.Named("sim")))

	metrics, err := telemetry.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		logger.Fatal("metrics", zap.Error(err))
	}
	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", zap.String("addr", *metricsAddr))
	}

	rec := &telemetry.Recorder{}
	clock := &sim.Clock{
		Sim:   s,
		Input: sc.Input(),
		OnTick: func(snap sim.Snapshot) {
			metrics.Observe(snap)
			if *plotDir != "" {
				rec.Record(snap)
			}
			if *logEvery > 0 && snap.Tick%uint64(*logEvery) == 0 {
				logger.Info(display.StatusLine(snap))
			}
		},
	}

	logger.Info("running",
		zap.String("scenario", *scenario),
		zap.String("tuning", *tuning),
		zap.Int("ticks", ticks),
		zap.Bool("realtime", *realtime))

	start := time.Now()
	var performed int
	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		performed, err = clock.Run(ctx, ticks)
		stop()
		if err != nil {
			logger.Warn("interrupted", zap.Error(err), zap.Int("performed", performed))
		}
	} else {
		clock.Advance(ticks)
		performed = ticks
	}

	final := s.Snapshot()
	st := s.State()
	logger.Info("completed",
		zap.Int("ticks", performed),
		zap.Duration("wall", time.Since(start)),
		zap.Float64("x", st.Position.X),
		zap.Float64("z", st.Position.Z),
		zap.Float64("y", st.Position.Y),
		zap.Float64("x_error", cfg.TargetX-st.Position.X),
		zap.Float64("z_error", cfg.TargetZ-st.Position.Z),
		zap.Float64("angle_deg", sim.RadToDeg(st.Angle-sim.HoverAngle)),
		zap.Float64("thrust", final.Thrust),
		zap.Uint64("sanitized", s.SanitizedTicks()))

	if *plotDir != "" {
		if err := rec.SavePlots(*plotDir); err != nil {
			logger.Fatal("plots", zap.Error(err))
		}
		logger.Info("plots written", zap.String("dir", *plotDir), zap.Int("samples", rec.Len()))
	}
}

func loadConfig(path, tuning string) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = sim.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	switch tuning {
	case "default":
	case "legacy":
		cfg = sim.LegacyGains(cfg)
	default:
		return cfg, fmt.Errorf("unknown tuning %q (want default or legacy)", tuning)
	}
	return cfg, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
