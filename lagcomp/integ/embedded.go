package integ

import "github.com/simtheverse/entsync/lagcomp"

// Embedded is a self-contained variable-step integrator parameterized by a
// fixed derivative callback. A single VariableStep call fully advances the
// loaded state, internally performing all stage work; no caller-level retry
// loop is needed.
type Embedded struct {
	deriv lagcomp.DerivativeFunc

	t  float64
	y  lagcomp.StateVector
	k  [4]lagcomp.StateVector
	ys lagcomp.StateVector // stage working state
}

// NewEmbeddedRK4 returns an embedded fourth-order Runge-Kutta integrator.
func NewEmbeddedRK4(_ float64, deriv lagcomp.DerivativeFunc) lagcomp.Integrator {
	return &Embedded{deriv: deriv}
}

// Prepare initializes the independent variable to the pass start time.
func (s *Embedded) Prepare(start float64) { s.t = start }

// Time returns the independent variable.
func (s *Embedded) Time() float64 { return s.t }

// Load copies the flattened state into the working buffer.
func (s *Embedded) Load(y *lagcomp.StateVector) { s.y = *y }

// Unload copies the working buffer back out.
func (s *Embedded) Unload(y *lagcomp.StateVector) { *y = s.y }

// Step advances the loaded state by exactly maxStep via VariableStep.
func (s *Embedded) Step(maxStep float64) float64 {
	if maxStep <= 0 {
		return 0
	}
	s.VariableStep(maxStep)
	return maxStep
}

// VariableStep advances the working state by dt with one classic
// fourth-order Runge-Kutta step.
func (s *Embedded) VariableStep(dt float64) {
	s.deriv(s.t, &s.y, &s.k[0])
	axpy(&s.ys, &s.y, dt/2, &s.k[0])
	s.deriv(s.t+dt/2, &s.ys, &s.k[1])
	axpy(&s.ys, &s.y, dt/2, &s.k[1])
	s.deriv(s.t+dt/2, &s.ys, &s.k[2])
	axpy(&s.ys, &s.y, dt, &s.k[2])
	s.deriv(s.t+dt, &s.ys, &s.k[3])
	for i := range s.y {
		s.y[i] += dt / 6 * (s.k[0][i] + 2*s.k[1][i] + 2*s.k[2][i] + s.k[3][i])
	}
	s.t += dt
}
