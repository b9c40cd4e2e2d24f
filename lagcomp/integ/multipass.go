package integ

import "github.com/simtheverse/entsync/lagcomp"

// scheme describes a fixed-step staged integration method in multi-pass
// form. advance computes the working state for the next intermediate pass
// (or the step result on the final pass) from the step start state y0 and
// the derivative table k, and returns the next pass index, 0 when the step
// is complete.
type scheme struct {
	name    string
	passes  int
	offsets []float64 // stage evaluation times as fractions of the step
	advance func(pass int, dt float64, y0 *lagcomp.StateVector, k []lagcomp.StateVector, y *lagcomp.StateVector) int
}

// axpy writes y = y0 + a*k.
func axpy(y *lagcomp.StateVector, y0 *lagcomp.StateVector, a float64, k *lagcomp.StateVector) {
	for i := range y {
		y[i] = y0[i] + a*k[i]
	}
}

var eulerScheme = scheme{
	name:    "euler",
	passes:  1,
	offsets: []float64{0},
	advance: func(_ int, dt float64, y0 *lagcomp.StateVector, k []lagcomp.StateVector, y *lagcomp.StateVector) int {
		axpy(y, y0, dt, &k[0])
		return 0
	},
}

var rk4Scheme = scheme{
	name:    "rk4",
	passes:  4,
	offsets: []float64{0, 0.5, 0.5, 1},
	advance: func(pass int, dt float64, y0 *lagcomp.StateVector, k []lagcomp.StateVector, y *lagcomp.StateVector) int {
		switch pass {
		case 0:
			axpy(y, y0, dt/2, &k[0])
			return 1
		case 1:
			axpy(y, y0, dt/2, &k[1])
			return 2
		case 2:
			axpy(y, y0, dt, &k[2])
			return 3
		default:
			for i := range y {
				y[i] = y0[i] + dt/6*(k[0][i]+2*k[1][i]+2*k[2][i]+k[3][i])
			}
			return 0
		}
	},
}

// MultiPass adapts an externally-styled staged stepper to the Integrator
// interface. Each intermediate pass requires the derivative to be recomputed
// for the current working state before the stepper continues; Step retries
// passes until the stepper reports the step complete.
type MultiPass struct {
	sch   scheme
	deriv lagcomp.DerivativeFunc

	t float64
	y lagcomp.StateVector
	k []lagcomp.StateVector
}

// NewEuler returns a single-pass first-order multi-pass integrator.
func NewEuler(_ float64, deriv lagcomp.DerivativeFunc) lagcomp.Integrator {
	return newMultiPass(eulerScheme, deriv)
}

// NewRK4 returns a four-pass classic Runge-Kutta multi-pass integrator.
func NewRK4(_ float64, deriv lagcomp.DerivativeFunc) lagcomp.Integrator {
	return newMultiPass(rk4Scheme, deriv)
}

func newMultiPass(sch scheme, deriv lagcomp.DerivativeFunc) *MultiPass {
	return &MultiPass{
		sch:   sch,
		deriv: deriv,
		k:     make([]lagcomp.StateVector, sch.passes),
	}
}

// Name returns the underlying scheme name.
func (m *MultiPass) Name() string { return m.sch.name }

// Prepare initializes the integrator clock to the pass start time.
func (m *MultiPass) Prepare(start float64) { m.t = start }

// Time returns the integrator's authoritative clock.
func (m *MultiPass) Time() float64 { return m.t }

// Load copies the flattened state into the working buffer.
func (m *MultiPass) Load(y *lagcomp.StateVector) { m.y = *y }

// Unload copies the working buffer back out.
func (m *MultiPass) Unload(y *lagcomp.StateVector) { *y = m.y }

// Step advances the loaded state by maxStep, driving the stepper through its
// intermediate passes. The working state after each pass is the input to the
// next pass's derivative evaluation.
func (m *MultiPass) Step(maxStep float64) float64 {
	if maxStep <= 0 {
		return 0
	}
	y0 := m.y
	pass := 0
	for {
		m.deriv(m.t+m.sch.offsets[pass]*maxStep, &m.y, &m.k[pass])
		next := m.sch.advance(pass, maxStep, &y0, m.k, &m.y)
		if next == 0 {
			break
		}
		pass = next
	}
	m.t += maxStep
	return maxStep
}
