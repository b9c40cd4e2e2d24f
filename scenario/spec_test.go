package scenario

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simtheverse/entsync/lagcomp"
)

const sampleSpec = `
name: flyby
duration: 5
cycle_time: 0.2
lookahead: 0.1
send_every: 2
entity:
  name: probe-7
  type: rigid-body
  position: [10, 0, 0]
  velocity: [1, 0, 0]
  attitude: [1, 0, 0, 0]
  angular_velocity: [0, 0, 0.2]
  acceleration: [0, 0.1, 0]
engine:
  integrator: rk4sa
  step_size: 0.01
  tolerance: 1.0e-9
`

func TestParse_FullSpec(t *testing.T) {
	got, err := Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Spec{
		Name:      "flyby",
		Duration:  5,
		CycleTime: 0.2,
		Lookahead: 0.1,
		SendEvery: 2,
		Entity: EntitySpec{
			Name:            "probe-7",
			Type:            "rigid-body",
			Position:        [3]float64{10, 0, 0},
			Velocity:        [3]float64{1, 0, 0},
			Attitude:        [4]float64{1, 0, 0, 0},
			AngularVelocity: [3]float64{0, 0, 0.2},
			Acceleration:    [3]float64{0, 0.1, 0},
		},
		Engine: EngineSpec{Integrator: "rk4sa", StepSize: 0.01, Tolerance: 1e-9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parsed spec mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DefaultsApplied(t *testing.T) {
	got, err := Parse([]byte(`
name: minimal
duration: 1
cycle_time: 0.1
lookahead: 0.05
entity:
  name: probe-1
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SendEvery != 1 {
		t.Errorf("send_every default: got %d, want 1", got.SendEvery)
	}
	if got.Engine.Integrator != lagcomp.DefaultIntegrator {
		t.Errorf("integrator default: got %q", got.Engine.Integrator)
	}
	if got.Engine.StepSize != lagcomp.DefaultStepSize {
		t.Errorf("step size default: got %g", got.Engine.StepSize)
	}
	if got.Entity.Attitude != [4]float64{1, 0, 0, 0} {
		t.Errorf("attitude default: got %v, want identity", got.Entity.Attitude)
	}
}

func TestValidate_Errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Spec)
		want   string
	}{
		{"zero duration", func(s *Spec) { s.Duration = 0 }, "duration"},
		{"zero cycle", func(s *Spec) { s.CycleTime = 0 }, "cycle_time"},
		{"negative lookahead", func(s *Spec) { s.Lookahead = -0.1 }, "lookahead"},
		{"late updates", func(s *Spec) { s.Lookahead = 2 * s.CycleTime }, "exceeds cycle_time"},
		{"unnamed entity", func(s *Spec) { s.Entity.Name = "" }, "entity name"},
		{"bad step", func(s *Spec) { s.Engine.StepSize = -1 }, "step size"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}
