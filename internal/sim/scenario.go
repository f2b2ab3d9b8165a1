package sim

import (
	"fmt"
	"math"
	"sort"
)

// Scenario injects scripted disturbances. It runs before each step with
// the number of ticks already performed.
type Scenario func(tick uint64, s *Simulation)

const (
	kickForce  = 50.0
	kickTorque = 200.0 * math.Pi / 180.0
	stormTicks = 20
)

var scenarios = map[string]Scenario{
	"hover": func(uint64, *Simulation) {},
	"drop": func(tick uint64, s *Simulation) {
		if tick == 0 {
			s.InjectForceZ(-kickForce)
		}
	},
	"push": func(tick uint64, s *Simulation) {
		if tick == 0 {
			s.InjectForceX(kickForce)
		}
	},
	"spin": func(tick uint64, s *Simulation) {
		if tick == 0 {
			s.InjectTorque(kickTorque)
		}
	},
	"storm": func(tick uint64, s *Simulation) {
		if tick < stormTicks {
			s.Inject(Disturbance{Fx: kickForce, Fz: -kickForce, Torque: kickTorque})
		}
	},
}

// LookupScenario returns the named scenario.
func LookupScenario(name string) (Scenario, error) {
	sc, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, ScenarioNames())
	}
	return sc, nil
}

func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Input adapts the scenario to Clock.Input.
func (sc Scenario) Input() func(*Simulation) {
	return func(s *Simulation) { sc(s.Ticks(), s) }
}
