// Package scenario drives a loopback demonstration of the compensation
// engine: a publishing federate propagates its state forward by the
// federation lookahead, a subscribing federate closes the remaining gap on
// arrival, and both are compared against the closed-form truth trajectory.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simtheverse/entsync/lagcomp"
)

// Spec describes one loopback compensation scenario.
type Spec struct {
	Name      string  `yaml:"name"`
	Duration  float64 `yaml:"duration"`             // scenario length in seconds
	CycleTime float64 `yaml:"cycle_time"`           // scheduler cycle in seconds
	Lookahead float64 `yaml:"lookahead"`            // federation lookahead in seconds
	SendEvery int     `yaml:"send_every,omitempty"` // publish every Nth cycle (1 = every cycle)
	RealTime  bool    `yaml:"real_time,omitempty"`  // pace cycles against the wall clock

	Entity EntitySpec `yaml:"entity"`
	Engine EngineSpec `yaml:"engine"`
}

// EntitySpec is the initial entity state and its constant accelerations.
// Vectors are x,y,z; the attitude quaternion is scalar-first (w,x,y,z).
type EntitySpec struct {
	Name                   string     `yaml:"name"`
	Type                   string     `yaml:"type,omitempty"`
	Position               [3]float64 `yaml:"position"`
	Velocity               [3]float64 `yaml:"velocity"`
	Attitude               [4]float64 `yaml:"attitude"`
	AngularVelocity        [3]float64 `yaml:"angular_velocity"`
	Acceleration           [3]float64 `yaml:"acceleration"`
	RotationalAcceleration [3]float64 `yaml:"rotational_acceleration"`
}

// EngineSpec selects and tunes the integration strategy.
type EngineSpec struct {
	Integrator string  `yaml:"integrator"`
	StepSize   float64 `yaml:"step_size"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Default returns a runnable scenario: a spinning body under constant
// acceleration, published every cycle.
func Default() *Spec {
	s := &Spec{
		Name:      "loopback",
		Duration:  10,
		CycleTime: 0.25,
		Lookahead: 0.1,
		Entity: EntitySpec{
			Name:            "vehicle-1",
			Type:            "rigid-body",
			Velocity:        [3]float64{1, 0, 0},
			Attitude:        [4]float64{1, 0, 0, 0},
			AngularVelocity: [3]float64{0, 0, 0.1},
			Acceleration:    [3]float64{0, 0.5, 0},
		},
	}
	s.applyDefaults()
	return s
}

// Load reads and validates a scenario spec from a yaml file.
func Load(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a yaml scenario spec.
func Parse(raw []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Spec) applyDefaults() {
	if s.SendEvery == 0 {
		s.SendEvery = 1
	}
	if s.Engine.Integrator == "" {
		s.Engine.Integrator = lagcomp.DefaultIntegrator
	}
	if s.Engine.StepSize == 0 {
		s.Engine.StepSize = lagcomp.DefaultStepSize
	}
	if s.Engine.Tolerance == 0 {
		s.Engine.Tolerance = lagcomp.DefaultTolerance
	}
	if s.Entity.Attitude == ([4]float64{}) {
		s.Entity.Attitude = [4]float64{1, 0, 0, 0}
	}
}

// Validate checks the scenario for configuration mistakes.
func (s *Spec) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("scenario %q: duration must be > 0, got %g", s.Name, s.Duration)
	}
	if s.CycleTime <= 0 {
		return fmt.Errorf("scenario %q: cycle_time must be > 0, got %g", s.Name, s.CycleTime)
	}
	if s.Lookahead < 0 {
		return fmt.Errorf("scenario %q: lookahead must be >= 0, got %g", s.Name, s.Lookahead)
	}
	if s.Lookahead > s.CycleTime {
		return fmt.Errorf("scenario %q: lookahead %g exceeds cycle_time %g; updates would arrive late every cycle",
			s.Name, s.Lookahead, s.CycleTime)
	}
	if s.SendEvery < 1 {
		return fmt.Errorf("scenario %q: send_every must be >= 1, got %d", s.Name, s.SendEvery)
	}
	if s.Entity.Name == "" {
		return fmt.Errorf("scenario %q: entity name must be set", s.Name)
	}
	return s.EngineConfig().Validate()
}

// EngineConfig converts the engine section to a lagcomp config.
func (s *Spec) EngineConfig() lagcomp.Config {
	cfg := lagcomp.DefaultConfig()
	cfg.Integrator = s.Engine.Integrator
	cfg.StepSize = s.Engine.StepSize
	cfg.Tolerance = s.Engine.Tolerance
	return cfg
}
